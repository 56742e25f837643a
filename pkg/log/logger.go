// Package log defines the logging interface used across kinesim and a
// logrus-backed implementation of it. Components take a Logger rather
// than depending on a concrete logging library.
package log

// Logger is the minimal leveled logging surface the rest of the code
// depends on.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Nop discards everything. Useful default for tests and library use.
type Nop struct{}

func (Nop) Debugf(string, ...interface{}) {}
func (Nop) Infof(string, ...interface{})  {}
func (Nop) Warnf(string, ...interface{})  {}
func (Nop) Errorf(string, ...interface{}) {}
