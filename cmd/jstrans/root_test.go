package jstrans

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meza/js-translations/internal/config"
	"github.com/meza/js-translations/internal/output"
)

func TestHelpTemplateIncludesHelpURL(t *testing.T) {
	t.Setenv("JSTRANS_TEST", "true")

	assert.Contains(t, Command().HelpTemplate(), "REPL_HELP_URL")
}

func TestCommand_UsageTemplateUsesWrappedFlags(t *testing.T) {
	t.Setenv("JSTRANS_TEST", "true")

	assert.Contains(t, Command().UsageTemplate(), ".FlagUsagesWrapped")
}

func TestCommand_RegistersSubcommandsAndFlags(t *testing.T) {
	t.Setenv("JSTRANS_TEST", "true")
	cmd := Command()

	for _, name := range []string{"extract", "bundles", "version"} {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, found.Name())
	}

	flags := cmd.PersistentFlags()
	require.NotNil(t, flags.Lookup("config"))
	assert.Equal(t, "q", flags.Lookup("quiet").Shorthand)
	require.NotNil(t, flags.Lookup("debug"))
}

func TestCommand_ConfigDefaultsToEnvironment(t *testing.T) {
	t.Setenv("JSTRANS_TEST", "true")
	t.Setenv("JSTRANS_CONFIG", "config/js-translations.toml")

	assert.Equal(t, "config/js-translations.toml", Command().PersistentFlags().Lookup("config").DefValue)
}

func TestCommand_HelpHandlesUnknownTopic(t *testing.T) {
	t.Setenv("JSTRANS_TEST", "true")

	cmd := Command()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"help", "nope"})

	assert.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "cmd.help.error")
}

func TestCommand_HelpHandlesKnownTopic(t *testing.T) {
	t.Setenv("JSTRANS_TEST", "true")

	cmd := Command()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"help", "extract"})

	assert.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "--bundle")
}

func TestExitCode(t *testing.T) {
	t.Setenv("JSTRANS_TEST", "true")

	tests := []struct {
		name     string
		err      error
		expected int
		printed  bool
	}{
		{"success", nil, ExitOK, false},
		{"write failure", &output.WriteError{Path: "out.js", Err: errors.New("disk full")}, ExitWriteFailed, false},
		{"configuration", &config.ConfigurationError{Bundle: "default", Reason: "please provide a destination"}, ExitInvalidInput, true},
		{"anything else", errors.New("boom"), ExitInvalidInput, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stderr := &bytes.Buffer{}
			cmd := &cobra.Command{}
			cmd.SetErr(stderr)

			assert.Equal(t, tt.expected, exitCode(cmd, tt.err))
			assert.Equal(t, tt.printed, stderr.Len() > 0)
		})
	}
}

func TestExecuteEndToEnd(t *testing.T) {
	t.Setenv("JSTRANS_TEST", "true")

	dir := t.TempDir()
	lang := filepath.Join(dir, "lang", "en")
	require.NoError(t, os.MkdirAll(lang, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(lang, "messages.php"), []byte("<?php return ['hi' => 'Hi'];"), 0o644))
	configPath := filepath.Join(dir, "js-translations.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("bundles:\n  default:\n    destination: out.js\n    path: lang\n"), 0o644))

	code := Execute(context.Background(), []string{"extract", "--config", configPath, "-q"})
	require.Equal(t, ExitOK, code)

	data, err := os.ReadFile(filepath.Join(dir, "out.js"))
	require.NoError(t, err)
	assert.Equal(t, `export default {"en":{"messages":{"hi":"Hi"}}};`, string(data))
}

func TestExecuteMapsFailures(t *testing.T) {
	t.Setenv("JSTRANS_TEST", "true")
	dir := t.TempDir()

	assert.Equal(t, ExitInvalidInput, Execute(context.Background(), []string{"extract", "--config", filepath.Join(dir, "missing.yaml")}))
	assert.Equal(t, ExitInvalidInput, Execute(context.Background(), []string{"--no-such-flag"}))

	configPath := filepath.Join(dir, "js-translations.yaml")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lang"), 0o755))
	require.NoError(t, os.WriteFile(configPath, []byte("bundles:\n  default:\n    destination: missing/out.js\n    path: lang\n"), 0o644))
	assert.Equal(t, ExitWriteFailed, Execute(context.Background(), []string{"extract", "--config", configPath, "-q"}))
}
