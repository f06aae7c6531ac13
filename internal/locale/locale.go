// Package locale resolves the translator used for weekday and month labels.
package locale

import (
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fi"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/sv"
	golocale "github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
)

// Auto selects the host locale
const Auto = "auto"

// Translator supplies localized calendar names
type Translator = locales.Translator

type supportedLocale struct {
	tag language.Tag
	new func() locales.Translator
}

// English must stay first, the matcher falls back to the first entry.
var supportedLocales = []supportedLocale{
	{language.English, en.New},
	{language.Swedish, sv.New},
	{language.Finnish, fi.New},
	{language.German, de.New},
	{language.French, fr.New},
}

var matcher = language.NewMatcher(func() []language.Tag {
	tags := make([]language.Tag, len(supportedLocales))
	for i, l := range supportedLocales {
		tags[i] = l.tag
	}
	return tags
}())

// Default returns the English translator
func Default() Translator {
	return en.New()
}

// Supported lists the base language codes with a translator
func Supported() []string {
	codes := make([]string, len(supportedLocales))
	for i, l := range supportedLocales {
		codes[i] = l.tag.String()
	}
	return codes
}

// Resolve returns the translator best matching the given BCP 47 or POSIX
// locale names, in order of preference. Unknown names fall back to English.
func Resolve(names ...string) Translator {
	tags := make([]string, 0, len(names))
	for _, name := range names {
		if normalized := normalize(name); normalized != "" {
			tags = append(tags, normalized)
		}
	}
	if len(tags) == 0 {
		return Default()
	}

	_, index := language.MatchStrings(matcher, tags...)
	return supportedLocales[index].new()
}

// Detect resolves the translator for the host locale
func Detect() Translator {
	names, err := golocale.GetLocales()
	if err != nil {
		return Default()
	}
	return Resolve(names...)
}

// FromSetting resolves a configured locale, where an empty value or "auto"
// means the host locale
func FromSetting(setting string) Translator {
	setting = strings.TrimSpace(setting)
	if setting == "" || strings.EqualFold(setting, Auto) {
		return Detect()
	}
	return Resolve(setting)
}

// normalize turns POSIX names such as "sv_SE.UTF-8" into BCP 47 tags
func normalize(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	if name == "C" || name == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(name, "_", "-")
}
