// Package logger builds the *slog.Logger instances used across mbuzz.
//
// New returns a logger configured by functional options: output format (json
// or text), minimum level, static attributes and ContextExtractor callbacks
// that pull request-scoped values such as the visitor and session identifiers
// out of the context on every record.
//
// Library components never write to the process default logger on their
// own. When the host application does not inject a logger they use Discard,
// so tracking stays silent unless asked otherwise.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithTextFormatter(),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithContextExtractors(reqcontext.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "session created", logger.Component("identity"))
package logger
