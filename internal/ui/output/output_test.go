package output_test

import (
	"bytes"
	"testing"

	"github.com/RomkoSI/ice/internal/ui/output"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestNew_PlainForBuffers(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")

	var buf bytes.Buffer
	out := output.New(&buf)
	assert.Equal(t, termenv.Ascii, out.Profile)

	_, _ = out.WriteString(out.String("plain").Bold().Foreground(termenv.RGBColor("#D93025")).String())
	assert.Equal(t, "plain", buf.String())
}

func TestNew_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.New(&bytes.Buffer{}).Profile)
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}
