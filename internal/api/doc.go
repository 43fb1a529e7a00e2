// Package api is the single point of egress to the Atlas backend.
//
// The client owns the base URL and credential policy, picks the request
// encoding from the payload's shape (multipart for file payloads, JSON
// otherwise), and decodes error responses defensively into a typed Error.
// There is no retry and no circuit breaking: a failed call surfaces to its
// caller unchanged.
package api
