package log

// Logger is a structured, leveled logger. Every method takes a message and
// an even list of key-value pairs (e.g. "address", addr, "error", err).
type Logger interface {
	// Debug logs detail useful while developing or diagnosing.
	Debug(msg string, keysAndValues ...any)
	// Info logs routine progress and state changes.
	Info(msg string, keysAndValues ...any)
	// Warn logs unexpected situations the process can continue from.
	Warn(msg string, keysAndValues ...any)
	// Error logs failures of a single operation.
	Error(msg string, keysAndValues ...any)
	// Fatal logs an unrecoverable failure and exits the process.
	Fatal(msg string, keysAndValues ...any)
	// WithKV returns a logger that adds key and value to every entry.
	WithKV(key string, value any) Logger
	// WithName returns a logger named after a component, nested under the current name.
	WithName(name string) Logger
	// Name returns the logger's name.
	Name() string
}

// Level is the severity of a log entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)
