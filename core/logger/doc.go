// Package logger provides a structured logging facility based on Zap.
//
// New builds a production (json) or development (console) logger from Config.
// WithRayID attaches the request's ray id, set by the rayid middleware, so every
// log line of one upload can be correlated with its archived file and audit entry.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
