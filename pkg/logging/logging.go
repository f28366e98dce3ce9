// Package logging wraps the leveled go-logging backend used throughout the
// renderer. Subsystems create module-named loggers with New; the binary
// configures the sink and verbosity once at startup.
package logging

import (
	"io"
	"os"

	logging "github.com/op/go-logging"
)

// Level is the verbosity threshold passed to SetLevel
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is the leveled logging interface handed to subsystems
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger for one subsystem
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink overrides the backend output writer
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	withFormat := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(withFormat)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity for all modules
func SetLevel(level Level) {
	var l logging.Level
	switch level {
	case Debug:
		l = logging.DEBUG
	case Info:
		l = logging.INFO
	case Notice:
		l = logging.NOTICE
	case Warning:
		l = logging.WARNING
	case Error:
		l = logging.ERROR
	}
	leveledBackend.SetLevel(l, "")
}

func init() {
	SetSink(os.Stderr)
	SetLevel(Notice)
}
