// Package i18n translates message keys into the client's preferred language.
//
// A Translator holds per-language catalogs; Middleware negotiates the
// request language from the Accept-Language header using x/text's matcher
// and stores it in the context, where the parameter pipeline picks it up to
// localize validation messages.
package i18n

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the fallback when negotiation yields nothing usable.
const DefaultLanguage = "en"

type localeKey struct{}

// SetLocale stores the negotiated language tag in the context.
func SetLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeKey{}, lang)
}

// GetLocale returns the negotiated language for the request, or
// DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if lang, ok := ctx.Value(localeKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLanguage
}

// Translator resolves message keys against per-language catalogs.
type Translator struct {
	catalogs    map[string]map[string]string
	defaultLang string
	matcher     language.Matcher
	tags        []language.Tag
}

// NewTranslator builds a Translator from catalogs keyed by language code.
// Language codes must parse as BCP 47 tags; the default language must have a
// catalog.
func NewTranslator(catalogs map[string]map[string]string, defaultLang string) (*Translator, error) {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	if _, ok := catalogs[defaultLang]; !ok {
		return nil, fmt.Errorf("i18n: no catalog for default language %q", defaultLang)
	}

	langs := make([]string, 0, len(catalogs))
	for lang := range catalogs {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	// The default language leads the tag list so the matcher falls back to
	// it for unknown requests.
	tags := []language.Tag{language.Make(defaultLang)}
	for _, lang := range langs {
		if lang == defaultLang {
			continue
		}
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("i18n: invalid language code %q: %w", lang, err)
		}
		tags = append(tags, tag)
	}

	return &Translator{
		catalogs:    catalogs,
		defaultLang: defaultLang,
		matcher:     language.NewMatcher(tags),
		tags:        tags,
	}, nil
}

// Match negotiates the best supported language for an Accept-Language value.
func (t *Translator) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return t.defaultLang
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return t.defaultLang
	}
	_, i, _ := t.matcher.Match(desired...)
	base, _ := t.tags[i].Base()
	if _, ok := t.catalogs[t.tags[i].String()]; ok {
		return t.tags[i].String()
	}
	return base.String()
}

// T translates key for the context's locale, interpolating {placeholder}
// values. Missing keys fall back to the default catalog, then to the key
// itself.
func (t *Translator) T(ctx context.Context, key string, values map[string]any) string {
	lang := GetLocale(ctx)

	msg, ok := t.catalogs[lang][key]
	if !ok {
		msg, ok = t.catalogs[t.defaultLang][key]
	}
	if !ok {
		msg = key
	}

	for name, value := range values {
		msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprint(value))
	}
	return msg
}

// Middleware negotiates the request language and stores it in the context.
func (t *Translator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := t.Match(r.Header.Get("Accept-Language"))
		next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
	})
}
