// Package log provides leveled logging for the library.
//
// The host application may raise the level or redirect output; by default
// everything above debug is written to stderr.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Severity of a log line.
type Severity uint32

// Log levels.
const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

func (s Severity) String() string {
	switch s {
	case TraceLevel:
		return "TRAC"
	case DebugLevel:
		return "DEBU"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARN"
	case ErrorLevel:
		return "ERRO"
	case CriticalLevel:
		return "CRIT"
	default:
		return "NONE"
	}
}

var (
	logLevel = uint32(InfoLevel)

	outputLock sync.Mutex
	output     io.Writer = os.Stderr
)

// SetLogLevel sets the minimum severity that is written.
func SetLogLevel(level Severity) {
	atomic.StoreUint32(&logLevel, uint32(level))
}

// GetLogLevel returns the current minimum severity.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(&logLevel))
}

// SetOutput redirects all log output to w.
func SetOutput(w io.Writer) {
	outputLock.Lock()
	defer outputLock.Unlock()
	output = w
}

func fastcheck(level Severity) bool {
	return uint32(level) >= atomic.LoadUint32(&logLevel)
}

func write(level Severity, msg string) {
	outputLock.Lock()
	defer outputLock.Unlock()
	fmt.Fprintf(output, "%s %s %s\n", time.Now().Format("060102 15:04:05.000"), level, msg)
}

// Tracef logs a formatted message at trace level.
func Tracef(format string, args ...interface{}) {
	if fastcheck(TraceLevel) {
		write(TraceLevel, fmt.Sprintf(format, args...))
	}
}

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) {
	if fastcheck(DebugLevel) {
		write(DebugLevel, fmt.Sprintf(format, args...))
	}
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) {
	if fastcheck(InfoLevel) {
		write(InfoLevel, fmt.Sprintf(format, args...))
	}
}

// Warningf logs a formatted message at warning level.
func Warningf(format string, args ...interface{}) {
	if fastcheck(WarningLevel) {
		write(WarningLevel, fmt.Sprintf(format, args...))
	}
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) {
	if fastcheck(ErrorLevel) {
		write(ErrorLevel, fmt.Sprintf(format, args...))
	}
}

// Criticalf logs a formatted message at critical level.
func Criticalf(format string, args ...interface{}) {
	if fastcheck(CriticalLevel) {
		write(CriticalLevel, fmt.Sprintf(format, args...))
	}
}
