package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBuffered(quiet bool, debug bool) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	return New(&stdout, &stderr, quiet, debug), &stdout, &stderr
}

func TestLogHonoursQuiet(t *testing.T) {
	tests := []struct {
		name      string
		quiet     bool
		debug     bool
		forceShow bool
		want      string
	}{
		{name: "default", want: "Wrote 3 files to public/js/translations.js\n"},
		{name: "quiet", quiet: true},
		{name: "quiet with forced line", quiet: true, forceShow: true, want: "Wrote 3 files to public/js/translations.js\n"},
		{name: "quiet overridden by debug", quiet: true, debug: true, want: "Wrote 3 files to public/js/translations.js\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, stdout, stderr := newBuffered(tt.quiet, tt.debug)

			logger.Log("Wrote 3 files to public/js/translations.js", tt.forceShow)

			assert.Equal(t, tt.want, stdout.String())
			assert.Empty(t, stderr.String())
		})
	}
}

func TestDebugRecordsKeyValues(t *testing.T) {
	logger, stdout, stderr := newBuffered(false, true)

	logger.Debug("loaded file", "path", "en/messages.json", "keys", 4)

	assert.True(t, logger.IsDebug())
	assert.Contains(t, stdout.String(), "jstrans")
	assert.Contains(t, stdout.String(), "loaded file")
	assert.Contains(t, stdout.String(), "path=en/messages.json")
	assert.Contains(t, stdout.String(), "keys=4")
	assert.Empty(t, stderr.String())
}

func TestDebugIsSilentByDefault(t *testing.T) {
	logger, stdout, stderr := newBuffered(false, false)

	logger.Debug("loaded file", "path", "en/messages.json")

	assert.False(t, logger.IsDebug())
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestWarnGoesToStderrEvenWhenQuiet(t *testing.T) {
	logger, stdout, stderr := newBuffered(true, false)

	logger.Warn("Unable to write public/js/translations.js")

	assert.Empty(t, stdout.String())
	assert.Equal(t, "Unable to write public/js/translations.js\n", stderr.String())
}
