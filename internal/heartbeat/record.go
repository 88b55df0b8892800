// Package heartbeat builds the record logged for every ping and
// owns the sinks that record is written to.
package heartbeat

import (
	"net/http"
	"time"

	"github.com/deppfellow/heartbeat/internal/sanitizer"
)

const (
	// MaxDeviceLength caps the device identifier, in characters.
	MaxDeviceLength = 100

	// MaxNoteLength caps the free-text note, in characters.
	MaxNoteLength = 500
)

// Request headers read by NewRecord. Lookups are case-insensitive.
const (
	HeaderDevice       = "X-Device"
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderClientIP     = "X-Client-IP"
)

const (
	fieldDevice = "device"
	fieldNote   = "note"
)

// Record is the sanitized heartbeat. Field order is the JSON key order
// of the log line: ts, device, ip, note.
type Record struct {
	TS     int64  `json:"ts"`
	Device string `json:"device"`
	IP     string `json:"ip"`
	Note   string `json:"note"`
}

// NewRecord builds a fully populated Record from a parsed body and the
// request headers. It never fails; missing or unusable values fall back
// to their defaults.
//
// The device comes from the body, or from the X-Device header when the
// body has no usable device value. The client address is the first entry
// of X-Forwarded-For, or X-Client-IP when X-Forwarded-For is empty.
func NewRecord(body Body, headers http.Header, now time.Time) Record {
	device := body.Get(fieldDevice)
	if !truthy(device) {
		device = headerValue(headers, HeaderDevice)
	}

	addr := headers.Get(HeaderForwardedFor)
	if addr == "" {
		addr = headers.Get(HeaderClientIP)
	}

	return Record{
		TS:     now.Unix(),
		Device: sanitizer.String(device, MaxDeviceLength, sanitizer.Unknown),
		IP:     sanitizer.IP(addr),
		Note:   sanitizer.String(body.Get(fieldNote), MaxNoteLength, ""),
	}
}

// headerValue returns the header as an untyped value, nil when absent.
func headerValue(headers http.Header, key string) any {
	if v := headers.Get(key); v != "" {
		return v
	}
	return nil
}
