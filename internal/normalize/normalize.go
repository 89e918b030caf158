// Package normalize holds the value normalizers applied to scanned tokens.
package normalize

import (
	"regexp"
	"strings"
)

// DefaultScheme is prefixed to hrefs that carry no scheme.
const DefaultScheme = "http://"

var (
	schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)
	hexPattern    = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)
)

// Trim strips leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeHref prefixes s with DefaultScheme unless it already starts with
// a URL scheme such as "tel:" or "https:".
func NormalizeHref(s string) string {
	return NormalizeHrefWithScheme(s, DefaultScheme)
}

// NormalizeHrefWithScheme is NormalizeHref with a caller-supplied default
// scheme. An empty scheme falls back to DefaultScheme.
func NormalizeHrefWithScheme(s, scheme string) string {
	if HasScheme(s) {
		return s
	}
	if scheme == "" {
		scheme = DefaultScheme
	}
	return scheme + s
}

// HasScheme reports whether s starts with a URL scheme followed by ':'.
func HasScheme(s string) bool {
	return schemePattern.MatchString(s)
}

// NormalizeColor returns token as a "#rrggbb" string when it is six hex
// digits with or without a leading '#'. Any other token, including named
// theme tokens, yields "".
func NormalizeColor(token string) string {
	if !hexPattern.MatchString(token) {
		return ""
	}
	if strings.HasPrefix(token, "#") {
		return token
	}
	return "#" + token
}
