package phonecrawl

import (
	"slices"
	"time"
)

// DefaultExcludedPaths lists account, cart and policy sections of a
// classifieds site that never carry listings.
var DefaultExcludedPaths = []string{
	"/auth", "/login", "/signup", "/user", "/logout",
	"/cart", "/checkout", "/account", "/admin",
}

// DefaultExcludedExtensions lists binary downloads skipped by the crawl.
var DefaultExcludedExtensions = []string{"pdf", "jpg", "png", "zip", "doc", "xls"}

// Built-in phone patterns.
const (
	// IvorianMobilePattern matches 10-digit Ivorian mobiles (01, 05, 07
	// prefixes) in pairs, optionally preceded by +225, 00225 or 225.
	IvorianMobilePattern = `(?:(?:\+|00)?225[\s.\-]?)?0[157](?:[\s.\-]?\d{2}){4}`

	// SenegalesePattern matches 9-digit Senegalese mobile (7X, 6X) and
	// fixed (33) numbers, optionally preceded by +221, 00221 or 221.
	SenegalesePattern = `(?:(?:\+|00)?221[\s.\-]?)?(?:7\d|6[126]|33)(?:[\s.\-]?\d){7}`
)

// Sites returns the built-in site presets keyed by name.
func Sites() map[string]SiteConfig {
	return map[string]SiteConfig{
		"jiji-ci": {
			Name:                   "jiji-ci",
			SeedURL:                "https://jiji.co.ci",
			DomainSuffix:           "jiji.co.ci",
			ExcludedPathSubstrings: append(slices.Clone(DefaultExcludedPaths), "/policy"),
			ExcludedExtensions:     slices.Clone(DefaultExcludedExtensions),
			PhonePattern:           IvorianMobilePattern,
			Locale: PhoneLocale{
				CountryCode:   "225",
				TrunkPrefix:   "0",
				Length:        10,
				LeadingDigits: []string{"0"},
			},
			MinFetchInterval: 500 * time.Millisecond,
		},
		"jiji-sn": {
			Name:                   "jiji-sn",
			SeedURL:                "https://jiji.sn",
			DomainSuffix:           "jiji.sn",
			ExcludedPathSubstrings: slices.Clone(DefaultExcludedPaths),
			ExcludedExtensions:     slices.Clone(DefaultExcludedExtensions),
			PhonePattern:           SenegalesePattern,
			Locale: PhoneLocale{
				CountryCode:   "221",
				Length:        9,
				LeadingDigits: []string{"7", "61", "62", "66", "33"},
			},
			MinFetchInterval: time.Second,
		},
	}
}

// LookupSite returns the built-in preset with the given name.
// Returns ENOTFOUND if no preset exists.
func LookupSite(name string) (SiteConfig, error) {
	site, ok := Sites()[name]
	if !ok {
		return SiteConfig{}, Errorf(ENOTFOUND, "unknown site %q", name)
	}
	return site, nil
}

// SiteNames returns the names of the built-in presets in sorted order.
func SiteNames() []string {
	names := make([]string, 0, 2)
	for name := range Sites() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
