// Package logging configures the charmbracelet logger shared by the
// commands. Terminal modes point it at a file so log lines never land on the
// rendered frame.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

type Level = log.Level

const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelError = log.ErrorLevel
)

const timeFormat = "2006-01-02 15:04:05.000"

// ParseLevel accepts the charmbracelet level names in any case; empty means
// info.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LevelInfo, nil
	}
	l, err := log.ParseLevel(s)
	if err != nil {
		return LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
	return l, nil
}

// New returns a timestamped logger writing to w.
func New(w io.Writer, level Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "wavefield",
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
	})
}

// File is a logger appending to a file it owns.
type File struct {
	*log.Logger
	f *os.File
}

// Open appends to the file at path.
func Open(path string, level Level) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	return &File{Logger: New(f, level), f: f}, nil
}

func (l *File) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	return l.f.Close()
}

func init() {
	SetDefault(nil)
}

// SetDefault installs l as the charmbracelet default logger, which the
// package-level functions write to. nil discards everything.
func SetDefault(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	log.SetDefault(l)
}

func Default() *log.Logger { return log.Default() }

func Debug(format string, args ...interface{}) { log.Debugf(format, args...) }
func Info(format string, args ...interface{})  { log.Infof(format, args...) }
func Error(format string, args ...interface{}) { log.Errorf(format, args...) }
