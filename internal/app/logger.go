package app

import (
	"fmt"
	"io"
	"sync"
	"time"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes one "RFC3339 [LEVEL] component: message" line per call.
// It is safe for concurrent use; the render loop and the HTTP handlers
// share one instance.
type FileLogger struct {
	mu *sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w} }

func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}

func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	line := time.Now().Format(time.RFC3339) + " [" + level + "] " + component + ": " + fmt.Sprintf(format, args...) + "\n"
	if l.mu != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
	}
	_, _ = io.WriteString(l.w, line)
}

// onceLogger suppresses repeats of the same error message, so a failure
// that persists across frames is logged once until it changes or clears.
type onceLogger struct {
	Logger
	last map[string]string
}

func (l *onceLogger) errorf(component, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.last == nil {
		l.last = make(map[string]string)
	}
	if l.last[component] == msg {
		return
	}
	l.last[component] = msg
	l.Errorf(component, "%s", msg)
}

func (l *onceLogger) clear(component string) {
	delete(l.last, component)
}
