// Package i18n handles localized user-facing strings.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	goLocale "github.com/jeandeaual/go-locale"
	i18nLib "github.com/kaptinlin/go-i18n"
	"golang.org/x/text/language"

	"github.com/meza/js-translations/internal/environment"
)

type LocaleProvider interface {
	GetLocales() ([]string, error)
}

type DefaultLocaleProvider struct{}

func (provider DefaultLocaleProvider) GetLocales() ([]string, error) {
	return goLocale.GetLocales()
}

//go:embed lang/*.json
var messagesFS embed.FS

const defaultLocale = "en-GB"

var (
	localizer      *i18nLib.Localizer
	bundle         *i18nLib.I18n
	langDir        = "lang"
	localeProvider LocaleProvider
	setupOnce      sync.Once
)

// translationMutex guards localizer.Get(); go-i18n caches compiled messages without locking.
var translationMutex sync.Mutex

func ResetForTesting() {
	translationMutex.Lock()
	localizer = nil
	bundle = nil
	translationMutex.Unlock()
	setupOnce = sync.Once{}
}

type TData map[string]interface{}

type Tvars struct {
	Count int
	Data  *TData
}

func ensureInitialized() {
	setupOnce.Do(setup)
}

func setup() {
	if localeProvider == nil {
		localeProvider = DefaultLocaleProvider{}
	}

	files, err := messagesFS.ReadDir(langDir)
	if err != nil {
		panic(err)
	}

	availableLocales := []string{defaultLocale}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		locale := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		if strings.EqualFold(locale, defaultLocale) {
			continue
		}
		availableLocales = append(availableLocales, locale)
	}

	newBundle := i18nLib.NewBundle(
		i18nLib.WithDefaultLocale(defaultLocale),
		i18nLib.WithLocales(availableLocales...),
	)

	if err := newBundle.LoadFS(messagesFS, fmt.Sprintf("%s/*.json", langDir)); err != nil {
		panic(err)
	}

	newLocalizer := newBundle.NewLocalizer(buildLocalizerLocales(getUserLocales())...)

	translationMutex.Lock()
	bundle = newBundle
	localizer = newLocalizer
	translationMutex.Unlock()
}

// T returns the message for key in the user's language. With JSTRANS_TEST
// set it returns the key and its arguments instead, so output stays stable
// across machines.
func T(key string, args ...Tvars) string {
	if environment.IsTestMode() {
		return formatKeyAndArgs(key, args...)
	}

	ensureInitialized()

	if len(args) > 1 {
		panic("Too many arguments")
	}

	var vars map[string]interface{}
	if len(args) > 0 {
		vars = make(map[string]interface{})
		if args[0].Data != nil {
			for varKey, value := range *args[0].Data {
				vars[varKey] = value
			}
		}
		vars["count"] = args[0].Count
	}

	translationMutex.Lock()
	defer translationMutex.Unlock()

	if vars == nil {
		return localizer.Get(key)
	}
	return localizer.Get(key, i18nLib.Vars(vars))
}

func getUserLocales() []string {
	if envLocale, present := os.LookupEnv("LANG"); present {
		return []string{envLocale}
	}

	detectedLocales, err := localeProvider.GetLocales()
	if err != nil {
		return []string{language.English.String()}
	}

	locales := make([]string, 0, len(detectedLocales))
	for _, localeName := range detectedLocales {
		if localeName != "" {
			locales = append(locales, localeName)
		}
	}
	return locales
}

func formatKeyAndArgs(key string, args ...Tvars) string {
	var sb strings.Builder
	sb.WriteString(key)

	for i, arg := range args {
		sb.WriteString(fmt.Sprintf(", Arg %d: {Count: %d, Data: %v}", i+1, arg.Count, arg.Data))
	}

	return sb.String()
}

// buildLocalizerLocales canonicalizes POSIX style names (de_DE.UTF-8 becomes
// de-DE) and adds the base language after each regional one.
func buildLocalizerLocales(rawLocales []string) []string {
	locales := make([]string, 0, len(rawLocales)*2)
	seen := make(map[string]struct{}, len(rawLocales)*2)

	add := func(locale string) {
		if _, ok := seen[locale]; !ok {
			locales = append(locales, locale)
			seen[locale] = struct{}{}
		}
	}

	for _, localeName := range rawLocales {
		localeName, _, _ = strings.Cut(localeName, ".")
		if localeName == "" {
			continue
		}

		tag, err := language.Parse(localeName)
		if err != nil {
			continue
		}

		add(tag.String())
		if base, _ := tag.Base(); base.String() != "" {
			add(base.String())
		}
	}

	return locales
}
