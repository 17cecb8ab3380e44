// Package component defines lifecycle-managed infrastructure pieces (the
// database, the HTTP server) and a Registry that starts them in order,
// stops them in reverse and aggregates their health.
//
// # Interfaces
//
//   - Component: Name/Start/Stop/Health
//   - Describable: startup summary description
//   - RouteProvider: registered HTTP routes for the startup summary
package component
