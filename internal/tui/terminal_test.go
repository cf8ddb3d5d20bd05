package tui

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

type fakeTerminal struct{ io.Writer }

func (fakeTerminal) Fd() uintptr { return 1 }

func mockTerminalDetection(t *testing.T, isTerminal bool) {
	t.Helper()
	restore := SetIsTerminalFuncForTesting(func(int) bool { return isTerminal })
	t.Cleanup(restore)
}

func TestIsTerminalWriterNeedsFileDescriptor(t *testing.T) {
	mockTerminalDetection(t, true)

	assert.False(t, IsTerminalWriter(&bytes.Buffer{}))
	assert.True(t, IsTerminalWriter(fakeTerminal{}))
}

func TestIsTerminalWriterAsksDetector(t *testing.T) {
	mockTerminalDetection(t, false)

	assert.False(t, IsTerminalWriter(fakeTerminal{}))
}

func TestPaintLeavesRedirectedOutputPlain(t *testing.T) {
	mockTerminalDetection(t, true)

	assert.Equal(t, "done", Paint(&bytes.Buffer{}, SuccessStyle, "done"))
	assert.Equal(t, "✘", ErrorIcon(&bytes.Buffer{}))
}

func TestPaintStylesTerminalOutput(t *testing.T) {
	mockTerminalDetection(t, true)
	previous := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() { lipgloss.SetColorProfile(previous) })

	painted := Paint(fakeTerminal{}, SuccessStyle, "done")

	assert.NotEqual(t, "done", painted)
	assert.Contains(t, painted, "done")
	assert.Contains(t, SuccessIcon(fakeTerminal{}), "✔")
	assert.Contains(t, WarningIcon(fakeTerminal{}), "!")
}
