// Package handler is the HTTP layer between the router and the services.
//
// Handlers read what they need from the request, call the service layer
// and write the response. Shared logging and tracing around every handler
// lives in base.go.
package handler
