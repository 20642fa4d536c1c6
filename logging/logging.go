package logging

import (
	"fmt"
	"os"
	"path"
	"runtime"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that GlobalConfig doesn't need to be passed to
// literally every function in the project.
var (
	Mode Flag = Nil
)

// MemString returns a string containing various statistics on the current
// memory usage of descqa.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}

// RunLog collects the warnings of a single validation run. Warnings are
// appended to log.txt in the run's output directory and mirrored to stderr.
type RunLog struct {
	fname string
}

// NewRunLog returns a RunLog writing to log.txt under dir.
func NewRunLog(dir string) *RunLog {
	return &RunLog{fname: path.Join(dir, "log.txt")}
}

// Warn formats a warning message, appends it to the log file, and echoes it
// to stderr. Warnings are recoverable by definition, so file errors here are
// returned rather than handled.
func (l *RunLog) Warn(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	fmt.Fprint(os.Stderr, msg)

	f, err := os.OpenFile(
		l.fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666,
	)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(msg)
	return err
}
