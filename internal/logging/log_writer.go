package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/debmagic/debmagic/internal/style"
)

// LogWriter is a writer used for logs
type LogWriter struct {
	sync.Mutex
	out      io.Writer
	clock    func() time.Time
	wantTime bool
}

// NewLogWriter creates a LogWriter
func NewLogWriter(writer io.Writer, clock func() time.Time, wantTime bool) *LogWriter {
	return &LogWriter{
		out:      writer,
		clock:    clock,
		wantTime: wantTime,
	}
}

// Write writes a message prepended by the time to the set io.Writer
func (tw *LogWriter) Write(buf []byte) (n int, err error) {
	tw.Lock()
	defer tw.Unlock()

	prefix := ""
	if tw.wantTime {
		prefix = fmt.Sprintf("%s ", tw.clock().Format(timeFmt))
	}

	_, err = fmt.Fprint(tw.out, prefix, string(buf))
	return len(buf), err
}

// WantTime turns timestamps on
func (tw *LogWriter) WantTime(f bool) {
	tw.Lock()
	defer tw.Unlock()
	tw.wantTime = f
}

// Fd returns the file descriptor of the underlying writer, so callers can
// detect whether the output is a terminal. Files and color consoles both
// expose one. It returns the max uintptr for any other writer.
func (tw *LogWriter) Fd() uintptr {
	tw.Lock()
	defer tw.Unlock()

	if file, ok := tw.out.(interface{ Fd() uintptr }); ok {
		return file.Fd()
	}

	return ^uintptr(0)
}

// Step logs a top level step of a build.
func Step(l Logger, format string, v ...interface{}) {
	l.Info(style.Step(format, v...))
}
