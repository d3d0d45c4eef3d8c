// Package logging provides a leveled logger satisfying the Logger interface
// of the pubsub package. On a terminal, log entries that know how to render
// themselves (via PrettyPrint) are printed in their own format; elsewhere
// entries are encoded as JSON lines.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"gofr.dev/pubsub"
)

// Level decides which log entries are emitted.
type Level int

const (
	DEBUG Level = iota + 1
	INFO
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBU"
	case INFO:
		return "INFO"
	case ERROR:
		return "ERRO"
	default:
		return ""
	}
}

func (l Level) color() uint {
	switch l {
	case ERROR:
		return 160
	case INFO:
		return 6
	case DEBUG:
		return 8
	default:
		return 37
	}
}

// PrettyPrint lets a log message render itself on a terminal.
type PrettyPrint interface {
	PrettyPrint(writer io.Writer)
}

type logger struct {
	level      Level
	normalOut  io.Writer
	errorOut   io.Writer
	isTerminal bool
	lock       chan struct{}
}

type logEntry struct {
	Level   string    `json:"level"`
	Time    time.Time `json:"time"`
	Message any       `json:"message"`
}

// NewLogger creates a logger writing to stdout/stderr at the given level.
func NewLogger(level Level) pubsub.Logger {
	l := &logger{
		level:     level,
		normalOut: os.Stdout,
		errorOut:  os.Stderr,
		lock:      make(chan struct{}, 1),
	}

	if f, ok := l.normalOut.(*os.File); ok {
		l.isTerminal = term.IsTerminal(int(f.Fd()))
	}

	return l
}

func (l *logger) Debug(args ...any) { l.emit(DEBUG, args...) }

func (l *logger) Debugf(format string, args ...any) { l.emitf(DEBUG, format, args...) }

func (l *logger) Log(args ...any) { l.emit(INFO, args...) }

func (l *logger) Logf(format string, args ...any) { l.emitf(INFO, format, args...) }

func (l *logger) Error(args ...any) { l.emit(ERROR, args...) }

func (l *logger) Errorf(format string, args ...any) { l.emitf(ERROR, format, args...) }

func (l *logger) emitf(level Level, format string, args ...any) {
	if level < l.level {
		return
	}

	l.write(level, fmt.Sprintf(format, args...))
}

func (l *logger) emit(level Level, args ...any) {
	if level < l.level {
		return
	}

	if len(args) == 1 {
		l.write(level, args[0])
	} else {
		l.write(level, args)
	}
}

func (l *logger) write(level Level, message any) {
	out := l.normalOut
	if level >= ERROR {
		out = l.errorOut
	}

	entry := logEntry{Level: level.String(), Time: time.Now(), Message: message}

	if l.isTerminal {
		l.prettyPrint(level, &entry, out)
	} else {
		_ = json.NewEncoder(out).Encode(entry)
	}
}

// stdout is shared; writing a single entry in several statements would
// interleave concurrent logs without the lock.
func (l *logger) prettyPrint(level Level, e *logEntry, out io.Writer) {
	l.lock <- struct{}{}
	defer func() { <-l.lock }()

	fmt.Fprintf(out, "[38;5;%dm%s[0m [%s] ", level.color(), e.Level, e.Time.Format(time.TimeOnly))

	if fn, ok := e.Message.(PrettyPrint); ok {
		fn.PrettyPrint(out)
	} else {
		fmt.Fprintf(out, "%v\n", e.Message)
	}
}
