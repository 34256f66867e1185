package binary

// Logger receives pipeline progress as a message plus alternating
// key/value pairs. The CLI adapts it to zerolog.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Info(string, ...any)  {}
func (discardLogger) Warn(string, ...any)  {}
func (discardLogger) Error(string, ...any) {}

// orNoop returns l, or a logger that drops everything when l is nil.
func orNoop(l Logger) Logger {
	if l == nil {
		return discardLogger{}
	}
	return l
}
