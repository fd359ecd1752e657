// Package api implements the HTTP clients for the voice commerce backend:
// speech transcription, spoken reply synthesis, and product search. The
// backend endpoints are an opaque contract; this package only enforces the
// response discipline (status, content type, JSON shape) on its side.
package api
