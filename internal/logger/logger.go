// Package logger writes user-facing progress to stdout, warnings to stderr and
// key/value debug records when --debug is set.
package logger

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/meza/js-translations/internal/constants"
)

type Logger struct {
	out        io.Writer
	err        io.Writer
	quiet      bool
	debug      bool
	structured *log.Logger
}

func New(out io.Writer, err io.Writer, quiet bool, debug bool) *Logger {
	return &Logger{
		out:   out,
		err:   err,
		quiet: quiet,
		debug: debug,
		structured: log.NewWithOptions(out, log.Options{
			Level:  log.DebugLevel,
			Prefix: constants.CommandName,
		}),
	}
}

// Log prints a progress line. --quiet hides it unless forceShow is set or
// debug output is on.
func (logger *Logger) Log(message string, forceShow bool) {
	if logger.quiet && !forceShow && !logger.debug {
		return
	}
	if _, err := fmt.Fprintln(logger.out, message); err != nil {
		return
	}
}

// Debug emits a key/value record when debug output is enabled.
func (logger *Logger) Debug(message string, keyvals ...any) {
	if !logger.debug {
		return
	}
	logger.structured.Debug(message, keyvals...)
}

// Warn reports a handled failure. Warnings are never silenced by --quiet.
func (logger *Logger) Warn(message string) {
	if _, err := fmt.Fprintln(logger.err, message); err != nil {
		return
	}
}

func (logger *Logger) IsDebug() bool {
	return logger.debug
}
