// File: locale.go
// Title: Locale Detection
// Description: Reads the process locale from the environment and matches it
//              against the loaded language codes.

package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// localeVariables are consulted in POSIX precedence order.
var localeVariables = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// EnvironmentLocale returns the process locale as a BCP 47 style tag, e.g.
// "de-DE" for LANG=de_DE.UTF-8. The POSIX locales "C" and "POSIX" yield "".
func EnvironmentLocale(getenv func(string) string) string {
	for _, name := range localeVariables {
		value := getenv(name)
		if value == "" {
			continue
		}
		return NormalizeLocale(value)
	}
	return ""
}

// NormalizeLocale strips encoding and modifier from a POSIX locale name and
// converts underscores to hyphens.
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "C" || locale == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(locale, "_", "-")
}

// MatchLanguage returns the code from codes that best serves the requested
// locale. Codes that are not valid language tags are never matched.
func MatchLanguage(requested string, codes []string) (string, bool) {
	if requested == "" || len(codes) == 0 {
		return "", false
	}

	want, err := language.Parse(requested)
	if err != nil {
		return "", false
	}

	supported := make([]language.Tag, 0, len(codes))
	index := make([]int, 0, len(codes))
	for i, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		index = append(index, i)
	}
	if len(supported) == 0 {
		return "", false
	}

	_, i, confidence := language.NewMatcher(supported).Match(want)
	if confidence == language.No {
		return "", false
	}
	return codes[index[i]], true
}
