// Package backend is the HTTP/JSON client for the ServiLink marketplace API.
//
// A single Client implements every marketplace gateway port. Requests are
// throttled with a token bucket, tagged with an X-Request-ID, and carry the
// session's bearer token when one is available. Non-2xx responses become
// *APIError values that unwrap to domain sentinel errors.
package backend
