// Package resilience retries fallible operations with capped exponential
// backoff that honors context cancellation.
package resilience
