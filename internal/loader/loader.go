// Package loader decodes a single translation source file into an ordered
// in-memory value.
package loader

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/meza/js-translations/internal/perf"
)

// Loader decodes the content of one file. It either returns a value or an error.
type Loader interface {
	Load(data []byte) (any, error)
}

type LoaderFunc func(data []byte) (any, error)

func (f LoaderFunc) Load(data []byte) (any, error) {
	return f(data)
}

type Registry struct {
	loaders map[string]Loader
}

func NewRegistry() *Registry {
	return &Registry{loaders: map[string]Loader{}}
}

// DefaultRegistry knows every source format the tool can read.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.Register("json", LoaderFunc(LoadJSON))
	registry.Register("php", LoaderFunc(LoadPHP))
	registry.Register("yaml", LoaderFunc(LoadYAML))
	registry.Register("yml", LoaderFunc(LoadYAML))
	registry.Register("toml", LoaderFunc(LoadTOML))
	return registry
}

func (r *Registry) Register(extension string, loader Loader) {
	r.loaders[extension] = loader
}

func (r *Registry) Supports(extension string) bool {
	_, ok := r.loaders[extension]
	return ok
}

// Extensions lists the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	extensions := make([]string, 0, len(r.loaders))
	for extension := range r.loaders {
		extensions = append(extensions, extension)
	}
	sort.Strings(extensions)
	return extensions
}

// LoadFile reads path from fs and decodes it with the loader registered for
// extension. relative is only used to name the file in errors.
func (r *Registry) LoadFile(fs afero.Fs, path string, relative string, extension string) (any, error) {
	region := perf.StartRegion("io.source.read")
	region.SetDetail("file", relative)
	defer region.End()

	loader, ok := r.loaders[extension]
	if !ok {
		return nil, &UnsupportedFormatError{Path: relative, Extension: extension}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading translation file %s", relative)
	}

	value, err := loader.Load(data)
	if err != nil {
		return nil, &ParseError{Path: relative, Err: err}
	}
	return value, nil
}
