// Package httpapi provides the REST API of the library inventory service.
//
// It exposes CRUD endpoints for authors and books over JSON, maps storage
// errors to HTTP statuses (not-found to 404, invalid author reference to 400,
// everything else to a sanitized 500), and logs one line per request with a
// generated request id.
package httpapi
