// Package logger is the ambient structured-logging layer the scheduling
// core writes its decision points through. It wraps github.com/rs/zerolog
// because zerolog's level enum natively carries the Trace level the
// core's five required levels (debug, info, warn, error, trace) need.
package logger

import (
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"
)

// Options configures a Logger at construction time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger is a small facade over zerolog.Logger exposing exactly the
// levels the core's design calls for.
type Logger struct {
	zl zerolog.Logger
}

// New creates a configured Logger.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = writer
	if opts.HumanReadable {
		out = zerolog.ConsoleWriter{Out: writer, TimeFormat: "15:04:05"}
	}

	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}, nil
}

func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(level)
}

// WithFields returns a derived logger that always writes the supplied
// fields, sorted by key for stable output.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil || len(fields) == 0 {
		return l
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx := l.zl.With()
	for _, k := range keys {
		ctx = ctx.Interface(k, fields[k])
	}
	return &Logger{zl: ctx.Logger()}
}

// Trace writes a trace-level entry, used for the full error detail of a
// failed compile.
func (l *Logger) Trace(msg string) {
	if l == nil {
		return
	}
	l.zl.Trace().Msg(msg)
}

// Debug writes a debug-level entry.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.zl.Debug().Msg(msg)
}

// Info writes an info-level entry.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.zl.Info().Msg(msg)
}

// Warn writes a warn-level entry.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.zl.Warn().Msg(msg)
}

// Error writes an error-level entry including the triggering error.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.zl.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
