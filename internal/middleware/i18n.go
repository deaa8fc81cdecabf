package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}
type countryContextKey struct{}

var (
	LocaleKey  = localeContextKey{}
	CountryKey = countryContextKey{}
)

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

var (
	supportedLocales = []language.Tag{language.English, language.Indonesian}
	localeMatcher    = language.NewMatcher(supportedLocales)

	// Country hints set by proxies and CDNs, in order of trust.
	countryHeaders = []string{"X-Country-Code", "X-IP-Country", "CF-IPCountry", "X-Appengine-Country"}
)

// I18N stores the message locale ("id" or "en") and, when known, the client
// country in the request context. Explicit X-Locale wins over
// Accept-Language; without either, visitors from ID get Indonesian.
func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	n := negotiator{fallback: defaultLocale, lookup: lookup}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			country := n.country(r)
			ctx := context.WithValue(r.Context(), LocaleKey, n.locale(r, country))
			if country != "" {
				ctx = context.WithValue(ctx, CountryKey, country)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type negotiator struct {
	fallback string
	lookup   CountryLookup
}

func (n negotiator) locale(r *http.Request, country string) string {
	if v := strings.TrimSpace(r.Header.Get("X-Locale")); v != "" {
		return normalizeLocale(v)
	}
	if v := parseAcceptLanguage(r.Header.Get("Accept-Language")); v != "" {
		return v
	}
	switch {
	case country == "ID":
		return "id"
	case country != "":
		return "en"
	case SupportedLocale(n.fallback):
		return n.fallback
	default:
		return "en"
	}
}

// country prefers proxy headers, then a region in the language headers, then
// the IP lookup. An Indonesian language tag without region counts as ID.
func (n negotiator) country(r *http.Request) string {
	for _, key := range countryHeaders {
		if v := strings.TrimSpace(r.Header.Get(key)); v != "" {
			return strings.ToUpper(v)
		}
	}
	xLocale, accept := r.Header.Get("X-Locale"), r.Header.Get("Accept-Language")
	for _, h := range []string{xLocale, accept} {
		if region := localeRegion(h); region != "" {
			return region
		}
	}
	if (strings.TrimSpace(xLocale) != "" && normalizeLocale(xLocale) == "id") || parseAcceptLanguage(accept) == "id" {
		return "ID"
	}
	if n.lookup == nil {
		return ""
	}
	code, err := n.lookup(clientIP(r))
	if err != nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// SupportedLocale reports whether the service has messages for locale.
func SupportedLocale(locale string) bool {
	return locale == "en" || locale == "id"
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return "en"
}

// CountryFromContext returns the ISO country code stored in the request context.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	return matchLocale(tags...)
}

func normalizeLocale(locale string) string {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return "en"
	}
	return matchLocale(tag)
}

func matchLocale(tags ...language.Tag) string {
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return "en"
	}
	base, _ := supportedLocales[idx].Base()
	return base.String()
}

// localeRegion returns the first explicit region in a language header.
func localeRegion(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		if region, conf := tag.Region(); conf == language.Exact {
			return region.String()
		}
	}
	return ""
}
