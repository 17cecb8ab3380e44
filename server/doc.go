// Package server provides the HTTP server: a Gin engine served over HTTP/1.1
// and h2c, wrapped as a lifecycle component.
//
// ApplyMiddleware installs the standard stack from server/middleware
// (recovery, request ID, tracing, metrics, request logging, CORS and the body
// size limit). RegisterDefaultEndpoints adds /health and /info from
// server/endpoint.
//
// Handlers answer with RespondOK, RespondCreated and RespondNoContent, and
// report failures through RespondWithError, which renders any
// *errors.AppError as the standard error envelope.
package server
