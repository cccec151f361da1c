// Package log provides the colored, prefixed logger shared by services.
package log

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/beka-birhanu/vinom-chase/config"
	"github.com/beka-birhanu/vinom-chase/service/i"
)

// ErrNilWriter is returned when New is given no output.
var ErrNilWriter = errors.New("logger needs a writer")

var _ i.Logger = &Logger{}

// Logger writes "[PREFIX] [LEVEL] message" lines.
type Logger struct {
	prefix string
	out    *log.Logger
	mu     sync.Mutex
}

// New creates a Logger whose prefix is painted with color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	return &Logger{
		prefix: fmt.Sprintf("%s[%s]%s", color, prefix, config.ColorReset),
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info implements i.Logger.
func (l *Logger) Info(msg string) {
	l.write(config.LogInfoColor, "INFO", msg)
}

// Warning implements i.Logger.
func (l *Logger) Warning(msg string) {
	l.write(config.LogWarningColor, "WARNING", msg)
}

// Error implements i.Logger.
func (l *Logger) Error(msg string) {
	l.write(config.LogErrorColor, "ERROR", msg)
}

func (l *Logger) write(color, level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("%s %s[%s]%s %s", l.prefix, color, level, config.LogColorReset, msg)
}
