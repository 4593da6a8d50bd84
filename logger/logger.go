package logger

import (
	"io"
	"log"

	"github.com/fatih/color"
)

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	debugTag = color.New(color.FgHiBlack).SprintFunc()
	infoTag  = color.New(color.FgCyan).SprintFunc()
	warnTag  = color.New(color.FgYellow).SprintFunc()
	errorTag = color.New(color.FgRed, color.Bold).SprintFunc()
)

type stdLogger struct {
	out   *log.Logger
	level Level
}

// New returns a Logger writing lines at or above level to w. Level tags are
// coloured unless color.NoColor is set.
func New(w io.Writer, level Level) Logger {
	return &stdLogger{out: log.New(w, "", 0), level: level}
}

// Default logs info and above to a colour-aware stderr.
func Default() Logger {
	return New(color.Error, LevelInfo)
}

func (l *stdLogger) Debugf(format string, v ...any) { l.logf(LevelDebug, debugTag("[DEBUG] "), format, v) }
func (l *stdLogger) Infof(format string, v ...any)  { l.logf(LevelInfo, infoTag("[INFO] "), format, v) }
func (l *stdLogger) Warnf(format string, v ...any)  { l.logf(LevelWarn, warnTag("[WARN] "), format, v) }
func (l *stdLogger) Errorf(format string, v ...any) { l.logf(LevelError, errorTag("[ERROR] "), format, v) }

func (l *stdLogger) logf(level Level, tag string, format string, v []any) {
	if level < l.level {
		return
	}
	l.out.Printf(tag+format, v...)
}

type nopLogger struct{}

// Nop discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
