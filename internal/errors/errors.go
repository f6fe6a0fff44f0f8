package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/elevate/internal/logger"
)

// Output sinks; swapped out in tests.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Warn reports a recoverable failure on stderr and in the log without stopping the command.
func Warn(context string, err error) {
	if err == nil {
		return
	}
	logger.Warn(context, "error", err)
	fmt.Fprintf(stderr, "Warning: %s: %v\n", context, err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(stderr, "%s\n", Format(err))
		exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(stderr, "%s\n", Formatf(format, args...))
	exit(1)
}
