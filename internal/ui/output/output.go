// Package output creates the terminal outputs that logs are written to.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// New returns an output for w, or for stderr if w is nil. The color profile
// is detected on w itself: NO_COLOR and writers that are not terminals get
// plain text.
func New(w io.Writer) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w)
}
