package phonecrawl

import "strings"

// PhoneLocale holds the national numbering rules used to canonicalize
// phone numbers found on a site.
type PhoneLocale struct {
	// CountryCode is the international dialing code without '+', e.g. "225".
	CountryCode string `json:"countryCode"`

	// TrunkPrefix replaces a stripped country code, e.g. "0".
	// Empty for numbering plans without one.
	TrunkPrefix string `json:"trunkPrefix"`

	// Length is the exact digit count of a canonical number.
	Length int `json:"length"`

	// LeadingDigits lists the accepted prefixes of a canonical number.
	// Empty accepts any prefix.
	LeadingDigits []string `json:"leadingDigits"`
}

// Normalize canonicalizes a raw phone candidate.
//
// All characters other than digits and '+' are dropped. A leading
// "+<cc>", "00<cc>" or bare "<cc>" is rewritten to the trunk prefix. The
// result must have exactly Length digits and start with one of
// LeadingDigits. The bool result is false if the candidate is rejected.
func (l *PhoneLocale) Normalize(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	clean := b.String()

	if cc := l.CountryCode; cc != "" {
		stripped, ok := "", false
		switch {
		case strings.HasPrefix(clean, "+"+cc):
			stripped, ok = clean[len(cc)+1:], true
		case strings.HasPrefix(clean, "00"+cc):
			stripped, ok = clean[len(cc)+2:], true
		case strings.HasPrefix(clean, cc) && len(clean) > l.Length:
			stripped, ok = clean[len(cc):], true
		}
		if ok {
			clean = stripped
			if !strings.HasPrefix(clean, l.TrunkPrefix) {
				clean = l.TrunkPrefix + clean
			}
		}
	}

	if len(clean) != l.Length || strings.ContainsRune(clean, '+') {
		return "", false
	}
	if len(l.LeadingDigits) == 0 {
		return clean, true
	}
	for _, prefix := range l.LeadingDigits {
		if strings.HasPrefix(clean, prefix) {
			return clean, true
		}
	}
	return "", false
}
