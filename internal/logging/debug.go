package logging

import (
	"fmt"
	"os"
	"strings"
)

// DebugEnabled returns true if debug mode is enabled via WORKER_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("WORKER_DEBUG") != ""
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		debugLogger().Debug().Msg(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		debugLogger().Debug().Msg(strings.TrimRight(fmt.Sprintln(args...), "\n"))
	}
}

func debugLogger() *Logger {
	l := Get().Level(parseLevel("debug"))
	return &l
}
