// Package service contains the business logic.
//
// It sits between the handler and the sinks: it receives raw request
// data from the handler, turns it into a sanitized heartbeat record,
// and hands that record to the configured sink.
package service
