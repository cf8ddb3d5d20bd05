package config

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/meza/js-translations/internal/constants"
	"github.com/meza/js-translations/internal/fileutils"
	"github.com/meza/js-translations/internal/perf"
)

//go:embed config_schema.cue
var configSchema string

// configExtensions are tried, in order, when no config file is named.
var configExtensions = []string{"yaml", "yml", "json", "toml", "cue"}

// Store holds every bundle of a config file. Bundle names are case-insensitive.
type Store struct {
	bundles map[string]Bundle
	meta    Metadata
}

// NewStore builds a store from already decoded bundles. configPath anchors
// relative paths and may be empty.
func NewStore(bundles map[string]Bundle, configPath string) *Store {
	normalized := make(map[string]Bundle, len(bundles))
	for name, bundle := range bundles {
		normalized[strings.ToLower(name)] = bundle
	}
	return &Store{bundles: normalized, meta: NewMetadata(configPath)}
}

func (s *Store) Bundle(name string) (Bundle, bool) {
	bundle, ok := s.bundles[strings.ToLower(name)]
	return bundle, ok
}

// Names returns the configured bundle names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.bundles))
	for name := range s.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) Metadata() Metadata {
	return s.meta
}

// Load reads the bundle store from configPath. With an empty configPath the
// working directory is searched for js-translations.{yaml,yml,json,toml,cue};
// finding none yields an empty store.
func Load(fs afero.Fs, configPath string) (*Store, error) {
	region := perf.StartRegion("io.config.read")
	defer region.End()

	if configPath == "" {
		found := findConfigFile(fs)
		if found == "" {
			return NewStore(nil, ""), nil
		}
		configPath = found
	} else {
		exists, err := afero.Exists(fs, configPath)
		if err != nil {
			return nil, errors.Wrapf(err, "checking configuration file %s", configPath)
		}
		if !exists {
			return nil, &ConfigFileNotFoundError{Path: configPath}
		}
	}
	region.SetDetail("config_path", configPath)

	v := viper.New()
	v.SetFs(fs)

	if strings.EqualFold(filepath.Ext(configPath), ".cue") {
		if err := loadCUEIntoViper(fs, v, configPath); err != nil {
			return nil, &ConfigFileInvalidError{Path: configPath, Err: err}
		}
	} else {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ConfigFileInvalidError{Path: configPath, Err: err}
		}
	}

	bundles := map[string]Bundle{}
	for name := range v.GetStringMap("bundles") {
		var bundle Bundle
		if err := v.UnmarshalKey("bundles."+name, &bundle); err != nil {
			return nil, &ConfigFileInvalidError{
				Path: configPath,
				Err:  fmt.Errorf("bundle '%s': %w", name, err),
			}
		}
		bundles[name] = bundle
	}

	return NewStore(bundles, configPath), nil
}

// findConfigFile returns the first candidate present in the working
// directory. Candidates that cannot be inspected count as absent.
func findConfigFile(fs afero.Fs) string {
	for _, extension := range configExtensions {
		candidate := constants.ConfigFileName + "." + extension
		if fileutils.FileExists(candidate, fs) {
			return candidate
		}
	}
	return ""
}

// loadCUEIntoViper validates a CUE config file against the #Config schema and
// merges the decoded result into v.
func loadCUEIntoViper(fs afero.Fs, v *viper.Viper, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return userValue.Err()
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return err
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return err
	}

	return v.MergeConfigMap(configMap)
}
