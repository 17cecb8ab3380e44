// Package bootstrap runs a service through its lifecycle: start registered
// components, run configuration callbacks, report a startup summary, wait
// for a shutdown signal and stop everything in reverse order.
package bootstrap
