package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrors(t *testing.T) {
	t.Run("ConfigFileInvalidError", func(t *testing.T) {
		underlying := errors.New("sample error")
		err := &ConfigFileInvalidError{
			Path: "js-translations.yaml",
			Err:  underlying,
		}
		expected := "Configuration file js-translations.yaml is invalid: sample error"
		assert.Equal(t, expected, err.Error())
		assert.Equal(t, underlying, errors.Unwrap(err))
	})

	t.Run("ConfigFileNotFoundError", func(t *testing.T) {
		err := &ConfigFileNotFoundError{
			Path: "/path/to/js-translations.json",
		}
		expected := "Configuration file not found: /path/to/js-translations.json"
		assert.Equal(t, expected, err.Error())
	})

	t.Run("ConfigurationError", func(t *testing.T) {
		err := &ConfigurationError{Bundle: "admin", Reason: "please provide a destination"}
		assert.Equal(t, "Invalid configuration for bundle 'admin': please provide a destination", err.Error())
		assert.True(t, errors.Is(err, &ConfigurationError{Bundle: "admin", Reason: "please provide a destination"}))
		assert.False(t, errors.Is(err, &ConfigurationError{Bundle: "default", Reason: "please provide a destination"}))
		assert.False(t, err.Is(errors.New("other")))
	})
}
