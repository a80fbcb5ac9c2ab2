// Package logger builds the zap logger used across the reconciler.
//
// Debug level selects zap's development config; every other level uses the
// production config. Format picks console or json encoding.
//
// WithRayID attaches the request ray ID stored by the rayid middleware so
// that all log lines of one HTTP request can be correlated.
//
//	log, _ := logger.New(&cfg.Log)
//	l := logger.WithRayID(log, c)
//	l.Error("Reconcile failed", zap.Error(err))
package logger
