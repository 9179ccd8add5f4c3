package config

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// exitCode is the process status for startup failures.
const exitCode = 1

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf reports a startup failure on stderr and terminates the process.
func Exitf(format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(stderr, msg)
	exit(exitCode)
}
