// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between HTTP clients and
// the verb and practice services.
//
// Errors are mapped to status codes in one place (MapErrorToStatusCode) and
// clients only ever see the sanitized message from GetSafeErrorMessage;
// the full error is redacted and logged with the request's trace ID.
package api
