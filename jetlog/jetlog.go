// Package jetlog provides the minimal process-wide log sink shared by the
// solver core and its drivers, grounded on the teacher's game/logging.go
// Logf/SetLogWriter pair.
package jetlog

import (
	"fmt"
	"io"
	"os"
)

var out io.Writer = os.Stdout

// SetOutput redirects future Logf calls to w. Passing nil restores stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		out = os.Stdout
		return
	}
	out = w
}

// Logf writes a formatted line to the current output.
func Logf(format string, args ...interface{}) {
	fmt.Fprintln(out, fmt.Sprintf(format, args...))
}
