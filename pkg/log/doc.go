// Package log provides the structured logger used across the relayer.
//
// Loggers are passed explicitly to the components that need them; there is
// no package-level logger. Two implementations are provided:
//
//   - ZapLogger: zap-backed logger with console, logfmt or json output
//   - NoopLogger: discards everything, the default for library code
//
// Basic usage:
//
//	logger := log.NewZapLogger(log.Config{Format: "json", Level: log.LevelInfo})
//	logger = logger.WithName("relayer").WithKV("signer", addr.Hex())
//	logger.Info("signer bound", "url", provider.URL())
//
// Private key material must never be passed to a logger.
package log
