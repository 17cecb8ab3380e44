// Package logger provides structured logging built on zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// child loggers and request-scoped fields carried in context.
//
//	log := logger.New(&cfg, "todoapi").WithComponent("identity")
//	log.Info("user registered", logger.Fields("user_id", u.ID))
package logger
