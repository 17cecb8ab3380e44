// Package middleware provides the gin middleware used by the server:
// panic recovery, request IDs, tracing, request logging, CORS, body size
// limits, rate limiting and bearer-token authentication.
package middleware
