// Package client talks to the fitness tracker backend.
//
// # Overview
//
// Client is the transport-agnostic contract with one method per backend
// endpoint. HTTPClient implements it over form-encoded POST and query-string
// GET requests whose responses are JSON envelopes:
//
//	{"success": bool, "message": "...", "error": "...", "data": {...}}
//
// # Error Handling
//
// Failures are reported as errors that callers match with errors.Is/As:
//   - ErrUnavailable: connection failure or timeout. Never retried.
//   - *RejectedError (matches ErrRejected): non-2xx status, carrying the
//     backend's error text when the body decodes.
//   - ErrDecode: 2xx status with a malformed body.
//
// An envelope with success=false on a 2xx status is not an error; callers
// read its message.
//
// # Observability
//
// Each request carries an X-Request-ID header. Failures are logged with the
// operation name, request id and status, and every request is recorded in
// observability.GatewayMetrics.
package client
