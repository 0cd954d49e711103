// Package api provides the HTTP handlers for the task API.
//
// Handlers decode and validate requests, call the service layer and write
// JSON envelopes: {"data": ...} on success and {"error", "trace_id"} on
// failure. Error mapping lives in errors.go so every handler reports the
// same status code for the same condition.
package api
