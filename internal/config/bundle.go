// Package config loads bundle definitions and resolves the configuration of a
// single extraction run.
package config

// DefaultExtensions are the source formats read when a bundle does not list its own.
var DefaultExtensions = []string{"php", "json"}

type Exclude struct {
	Locales    []string `mapstructure:"locales"`
	Files      []string `mapstructure:"files"`
	Extensions []string `mapstructure:"extensions"`
	Patterns   []string `mapstructure:"patterns"`
}

// Bundle is one named extraction target as written in the config file.
type Bundle struct {
	Destination string   `mapstructure:"destination"`
	Path        string   `mapstructure:"path"`
	Namespace   string   `mapstructure:"namespace"`
	Extensions  []string `mapstructure:"extensions"`
	Exclude     Exclude  `mapstructure:"exclude"`
	Strict      bool     `mapstructure:"strict"`
	Pretty      bool     `mapstructure:"pretty"`
}

// Overrides carries the command line values that win over the bundle's.
type Overrides struct {
	Destination string
	Namespace   string
}

// RunConfig is the effective configuration of one run. Extensions lists the
// enabled formats before exclude.extensions is applied.
type RunConfig struct {
	Bundle      string
	Destination string
	SourcePath  string
	Namespace   string
	Extensions  []string
	Exclude     Exclude
	Strict      bool
	Pretty      bool
}

// Resolve merges overrides into the named bundle. A bundle missing from the
// store behaves like an empty one, so the run fails on the missing
// destination instead. supported lists the extensions a loader exists for.
func Resolve(store *Store, name string, overrides Overrides, supported []string) (RunConfig, error) {
	bundle, _ := store.Bundle(name)

	destination := overrides.Destination
	if destination == "" {
		destination = store.Metadata().ResolvePath(bundle.Destination)
	}
	if destination == "" {
		return RunConfig{}, &ConfigurationError{Bundle: name, Reason: "please provide a destination"}
	}

	namespace := overrides.Namespace
	if namespace == "" {
		namespace = bundle.Namespace
	}

	enabled := bundle.Extensions
	if len(enabled) == 0 {
		enabled = DefaultExtensions
	}
	if err := checkSupported(name, "extensions", enabled, supported); err != nil {
		return RunConfig{}, err
	}
	if err := checkSupported(name, "exclude.extensions", bundle.Exclude.Extensions, supported); err != nil {
		return RunConfig{}, err
	}

	return RunConfig{
		Bundle:      name,
		Destination: destination,
		SourcePath:  store.Metadata().ResolvePath(bundle.Path),
		Namespace:   namespace,
		Extensions:  append([]string(nil), enabled...),
		Exclude:     bundle.Exclude,
		Strict:      bundle.Strict,
		Pretty:      bundle.Pretty,
	}, nil
}

func checkSupported(bundle string, field string, extensions []string, supported []string) error {
	known := make(map[string]struct{}, len(supported))
	for _, extension := range supported {
		known[extension] = struct{}{}
	}
	for _, extension := range extensions {
		if _, ok := known[extension]; !ok {
			return &ConfigurationError{
				Bundle: bundle,
				Reason: "unsupported extension '" + extension + "' in " + field,
			}
		}
	}
	return nil
}
