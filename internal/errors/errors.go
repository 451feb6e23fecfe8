// Package errors renders command failures for the terminal.
package errors

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/horo/internal/logger"
)

const prefix = "Error: "

// Format renders err for display. Errors built with errors.Join are
// listed one per line beneath the first.
func Format(err error) string {
	if err == nil {
		return ""
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return prefix + err.Error()
	}
	var lines []string
	for _, e := range joined.Unwrap() {
		if e != nil {
			lines = append(lines, e.Error())
		}
	}
	if len(lines) == 0 {
		return prefix + err.Error()
	}
	return prefix + strings.Join(lines, "\n  ")
}

// Fatal records err in the log file, prints it and exits with status 1.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
