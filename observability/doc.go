// Package observability wires OpenTelemetry tracing and metrics.
//
// Providers export over OTLP/HTTP and are owned by a Component, so the
// registry starts them first and flushes them last:
//
//	obs := observability.NewComponent(cfg, log)
//	registry.Register(obs)
//
// Operations are wrapped with an OperationContext, which opens a span and
// records operation.total / operation.duration on completion:
//
//	oc := observability.NewOperationContext("todoapi", "login", requestID, "", metrics)
//	ctx, span := oc.StartSpanForOperation(ctx, "identity.Login")
//	defer func() { oc.EndOperation(ctx, span, status, err) }()
package observability
