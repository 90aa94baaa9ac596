package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Logf prints a timestamped progress line when verbose mode is on
func Logf(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	fmt.Printf("[%s] %s\n", time.Now().Format(time.RFC3339), fmt.Sprintf(format, args...))
}

// Warnf prints a one-line warning to stderr; warnings never interrupt a run
func Warnf(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, text.FgYellow.Sprintf("  ! "+format, args...))
}
