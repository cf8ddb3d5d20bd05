package config

import "fmt"

type ConfigFileInvalidError struct {
	Path string
	Err  error
}

type ConfigFileNotFoundError struct {
	Path string
}

// ConfigurationError stops a run before anything is read or written.
type ConfigurationError struct {
	Bundle string
	Reason string
}

func (e *ConfigFileInvalidError) Error() string {
	return fmt.Sprintf("Configuration file %s is invalid: %s", e.Path, e.Err)
}

func (e *ConfigFileInvalidError) Unwrap() error {
	return e.Err
}

func (e *ConfigFileNotFoundError) Error() string {
	return fmt.Sprintf("Configuration file not found: %s", e.Path)
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("Invalid configuration for bundle '%s': %s", e.Bundle, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	t, ok := target.(*ConfigurationError)
	if !ok {
		return false
	}
	return e.Bundle == t.Bundle && e.Reason == t.Reason
}
