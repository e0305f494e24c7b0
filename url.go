package phonecrawl

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// schemePattern matches a leading URI scheme such as "https:" or "tel:".
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// NormalizeURL canonicalizes a raw href found on the page at base.
//
// Hrefs without a scheme are joined to the origin (scheme and host) of base
// with a single slash; protocol-relative hrefs take the scheme of base.
// Everything from the first '#' or '?' is dropped, as is any trailing run of
// slashes and whitespace.
// NormalizeURL never fails and is idempotent: normalizing its output
// returns the output unchanged.
func NormalizeURL(raw, base string) string {
	s := strings.TrimSpace(raw)
	if !schemePattern.MatchString(s) {
		scheme, origin := originOf(base)
		if strings.HasPrefix(s, "//") {
			s = scheme + ":" + s
		} else {
			s = origin + "/" + strings.TrimLeft(s, "/")
		}
	}
	if i := strings.IndexAny(s, "#?"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRightFunc(s, isTrailingNoise)
}

func isTrailingNoise(r rune) bool {
	return r == '/' || unicode.IsSpace(r)
}

// originOf returns the scheme and "scheme://host" origin of base.
// An unparseable base yields an empty origin.
func originOf(base string) (scheme, origin string) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return "https", ""
	}
	scheme = u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme, scheme + "://" + u.Host
}
