// Package logging is the structured logging facade used by every component.
// Components receive a Logger through their constructor; production code uses
// the logrus-backed adapter and tests use MockLogger.
package logging

// Logger is a leveled, structured logger. Derived loggers returned by the
// With* methods carry their fields into every entry they write.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	// Warn is also the channel for rows that need manual review.
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is one key/value pair of a log entry. Keys should come from the Field*
// constants so entries stay greppable.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
