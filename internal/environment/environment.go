// Package environment reads runtime environment configuration.
package environment

import (
	"os"
)

// ConfigPath returns the config file named by JSTRANS_CONFIG, or an empty string.
func ConfigPath() string {
	path, present := os.LookupEnv("JSTRANS_CONFIG")
	if present {
		return path
	}

	return ""
}

// IsTestMode reports whether user-facing strings should be rendered as raw keys.
func IsTestMode() bool {
	_, present := os.LookupEnv("JSTRANS_TEST")
	return present
}

// Overridden at build time with -ldflags "-X".
var (
	appVersion = "REPL_VERSION"
	helpURL    = "REPL_HELP_URL"
)

func AppVersion() string {
	return appVersion
}

func HelpURL() string {
	return helpURL
}
