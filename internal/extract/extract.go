// Package extract runs one bundle extraction: discover, filter, load, merge,
// render and write.
package extract

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/text/language"

	"github.com/meza/js-translations/internal/config"
	"github.com/meza/js-translations/internal/discovery"
	"github.com/meza/js-translations/internal/i18n"
	"github.com/meza/js-translations/internal/keypath"
	"github.com/meza/js-translations/internal/loader"
	"github.com/meza/js-translations/internal/logger"
	"github.com/meza/js-translations/internal/output"
	"github.com/meza/js-translations/internal/perf"
	"github.com/meza/js-translations/internal/render"
	"github.com/meza/js-translations/internal/transignore"
	"github.com/meza/js-translations/internal/tree"
)

type Deps struct {
	FS       afero.Fs
	Logger   *logger.Logger
	Registry *loader.Registry
}

// Result summarises a run. Keys holds the key path of every merged file in
// merge order.
type Result struct {
	Destination string
	Files       int
	Skipped     int
	Keys        []string
	Locales     []string
	Collisions  []*tree.CollisionError
}

// Run extracts cfg into its destination. Every failure before the write
// leaves the destination untouched; a failed write is an *output.WriteError.
func Run(ctx context.Context, deps Deps, cfg config.RunConfig) (Result, error) {
	perf.Reset()
	ctx, region := perf.StartRegionContext(ctx, "extract.run")
	region.SetDetail("bundle", cfg.Bundle)

	result, err := run(ctx, deps, cfg)

	region.SetDetail("files", result.Files)
	region.End()
	logTimings(deps.Logger)
	return result, err
}

func run(ctx context.Context, deps Deps, cfg config.RunConfig) (Result, error) {
	result := Result{Destination: cfg.Destination}
	log := deps.Logger

	allowed := discovery.AllowedExtensions(cfg.Extensions, cfg.Exclude.Extensions)
	log.Debug("discovering sources", "path", cfg.SourcePath, "extensions", allowed)

	files, err := discovery.List(deps.FS, cfg.SourcePath, allowed)
	if err != nil {
		return result, err
	}

	patterns, err := transignore.ListPatterns(deps.FS, cfg.SourcePath, cfg.Exclude.Patterns)
	if err != nil {
		return result, errors.Wrap(err, "reading ignore patterns")
	}

	filter := keypath.Filter{
		Locales:  cfg.Exclude.Locales,
		Files:    cfg.Exclude.Files,
		Patterns: patterns,
	}

	dictionary := tree.New()
	checkedLocales := map[string]struct{}{}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		key := keypath.Derive(file.Relative, file.Extension, cfg.Namespace)
		if skip, reason := filter.Skip(key); skip {
			result.Skipped++
			log.Debug("skipped", "path", file.Relative, "reason", reason)
			continue
		}

		if _, seen := checkedLocales[key.Locale]; !seen {
			checkedLocales[key.Locale] = struct{}{}
			if _, err := language.Parse(key.Locale); err != nil {
				log.Debug(i18n.T("extract.locale_unrecognised", i18n.Tvars{
					Data: &i18n.TData{"locale": key.Locale},
				}), "locale", key.Locale)
			}
		}

		value, err := deps.Registry.LoadFile(deps.FS, file.Path, file.Relative, file.Extension)
		if err != nil {
			return result, err
		}

		if collision := merge(dictionary, key, value); collision != nil {
			if cfg.Strict {
				return result, collision
			}
			result.Collisions = append(result.Collisions, collision)
			log.Warn(i18n.T("extract.collision", i18n.Tvars{
				Data: &i18n.TData{"message": collision.Error()},
			}))
		}

		result.Files++
		result.Keys = append(result.Keys, key.Path)
		log.Debug("merged", "path", file.Relative, "key", key.Path)
	}
	result.Locales = dictionary.Keys()

	renderRegion := perf.StartRegion("extract.render")
	data, err := render.Render(dictionary, cfg.Destination, cfg.Pretty)
	renderRegion.End()
	if err != nil {
		return result, err
	}

	if err := output.Write(deps.FS, cfg.Destination, data); err != nil {
		return result, err
	}
	return result, nil
}

// merge places a file's content at its key. A file in the source root holds
// a whole locale, so its entries go directly under the locale key.
func merge(dictionary *tree.Tree, key keypath.Key, value any) *tree.CollisionError {
	if object, ok := value.(*tree.Object); ok && key.Pathname == "" {
		return dictionary.Merge(key.Path, object)
	}
	return dictionary.Set(key.Path, value)
}

func logTimings(log *logger.Logger) {
	if !log.IsDebug() {
		return
	}
	for _, total := range perf.Totals(perf.GetSpans()) {
		log.Debug("timing", "stage", total.Name, "count", total.Count, "duration", total.Duration)
	}
}
