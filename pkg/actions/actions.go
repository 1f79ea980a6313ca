// Package actions speaks the GitHub Actions workflow command protocol
package actions

import (
	"fmt"
	"io"
	"strings"
)

var dataEscaper = strings.NewReplacer(
	"%", "%25",
	"\r", "%0D",
	"\n", "%0A",
)

// SetFailed writes an error annotation for the runner.
// The process still has to exit with a non-zero code to fail the step.
func SetFailed(w io.Writer, message string) {
	fmt.Fprintf(w, "::error::%s\n", dataEscaper.Replace(message))
}
