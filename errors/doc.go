// Package errors provides the service-wide error type. Every failure that can
// reach an HTTP client is an *AppError carrying a stable code, a status and a
// client-safe message; causes stay server-side.
package errors
