// Package logger provides structured logging with context extraction and Sentry integration.
//
// Loggers are built from a Config that is usually filled from the environment
// (LOG_LEVEL, LOG_FORMAT, SENTRY_DSN, SENTRY_ENVIRONMENT):
//
//	var cfg logger.Config
//	if err := env.Parse(&cfg); err != nil {
//		return err
//	}
//	log := logger.New(cfg, middlewares.RequestIDExtractor())
//
// # Context Extractors
//
// A ContextExtractor pulls a request-scoped attribute from context. Extractors
// run on every log call, so values such as request IDs are always fresh.
// FromContext covers the common case of a string stored under a context key:
//
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// {"level":"INFO","msg":"request processed","status":200,"request_id":"abc-123"}
//
// # Sentry
//
// When SENTRY_DSN is set, errors create Sentry issues and warnings are stored
// as breadcrumbs. Without a DSN, or when initialization fails, logging
// continues to the configured output only.
//
// Use NewNope for tests and as a default when logging is not configured.
package logger
