package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// UserAgent identifies the agent to the heartbeat endpoint.
	UserAgent = "ISP-Monitor-Heartbeat-Agent/1.0"

	// RequestTimeout bounds a single ping, including reading the response.
	RequestTimeout = 10 * time.Second

	// maxResponseBytes is how much of the response body is read for logging.
	maxResponseBytes = 4 << 10
)

// StatusError is returned when the endpoint answers with anything but 200.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

type pingPayload struct {
	Device string `json:"device"`
	Note   string `json:"note"`
}

// Client sends heartbeat pings to one endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient returns a Client using a pooled cleanhttp client with
// RequestTimeout.
func NewClient(url string, logger zerolog.Logger) *Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = RequestTimeout

	return &Client{
		url:        url,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Send POSTs {"device","note"} as JSON. It succeeds only on status 200.
func (c *Client) Send(ctx context.Context, device, note string) error {
	payload, err := json.Marshal(pingPayload{Device: device, Note: note})
	if err != nil {
		return errors.Wrap(err, "failed to encode ping")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build ping request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	c.logger.Debug().
		Str("url", c.url).
		Str("device", device).
		Str("note", note).
		Msg("sending ping")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "ping request failed")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Str("response", string(body)).
		Msg("ping response")

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	c.logger.Info().Str("device", device).Msg("ping sent successfully")

	return nil
}
