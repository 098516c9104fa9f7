package core

// Logger is implemented by services that can report diagnostics.
// args may hold an error, a map[string]interface{} of extra fields or domain values the implementation knows how to describe.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
