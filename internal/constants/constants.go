// Package constants defines shared constant values.
package constants

// AppName is the project identifier used in logs and metadata.
const AppName = "js-translations"

// CommandName is the primary CLI command name.
const CommandName = "jstrans"

// ConfigFileName is the config file base name looked up in the working directory.
const ConfigFileName = "js-translations"

// IgnoreFileName lists extra exclusion patterns inside a bundle's source directory.
const IgnoreFileName = ".jstransignore"

// DefaultBundle is used when no --bundle flag is given.
const DefaultBundle = "default"
