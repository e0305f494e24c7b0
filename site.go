package phonecrawl

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

// SiteConfig describes one target site: its crawl scope and the rules used
// to recognize phone numbers on its pages.
type SiteConfig struct {
	// Name identifies the site in reports and output file names.
	Name string `json:"name"`

	// SeedURL is the first page queued for the crawl.
	SeedURL string `json:"seedUrl"`

	// DomainSuffix restricts the crawl to hosts equal to it or below it.
	DomainSuffix string `json:"domainSuffix"`

	// ExcludedPathSubstrings rejects any URL whose path contains one of them.
	ExcludedPathSubstrings []string `json:"excludedPathSubstrings"`

	// ExcludedExtensions rejects URLs whose path ends in one of these
	// file extensions. Compared case-insensitively, with or without the dot.
	ExcludedExtensions []string `json:"excludedExtensions"`

	// PhonePattern is the locale-specific regular expression for numbers.
	PhonePattern string `json:"phonePattern"`

	// Locale canonicalizes pattern matches.
	Locale PhoneLocale `json:"locale"`

	// MinFetchInterval is the minimum spacing between fetch starts.
	MinFetchInterval time.Duration `json:"minFetchInterval"`

	// PageCap stops the crawl after this many successful fetches.
	// Zero means unlimited.
	PageCap int `json:"pageCap"`
}

// Validate returns an error if the site configuration cannot drive a crawl.
func (c *SiteConfig) Validate() error {
	if c.SeedURL == "" {
		return Errorf(EINVALID, "site seed URL required")
	}
	if c.DomainSuffix == "" {
		return Errorf(EINVALID, "site domain suffix required")
	}
	u, err := url.Parse(c.SeedURL)
	if err != nil || u.Host == "" {
		return Errorf(EINVALID, "site seed URL %q must be absolute", c.SeedURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "site seed URL %q must use http or https", c.SeedURL)
	}
	if !hostInDomain(u.Hostname(), c.DomainSuffix) {
		return Errorf(EINVALID, "site seed host %q is outside domain %q", u.Hostname(), c.DomainSuffix)
	}
	if _, err := c.Compile(); err != nil {
		return err
	}
	if c.Locale.Length <= 0 {
		return Errorf(EINVALID, "site phone locale length must be positive")
	}
	if c.MinFetchInterval < 0 {
		return Errorf(EINVALID, "site fetch interval must not be negative")
	}
	if c.PageCap < 0 {
		return Errorf(EINVALID, "site page cap must not be negative")
	}
	return nil
}

// Compile returns the compiled phone pattern.
func (c *SiteConfig) Compile() (*regexp.Regexp, error) {
	if c.PhonePattern == "" {
		return nil, Errorf(EINVALID, "site phone pattern required")
	}
	re, err := regexp.Compile(c.PhonePattern)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid phone pattern %q: %v", c.PhonePattern, err)
	}
	return re, nil
}

// InScope reports whether a canonical URL belongs to the crawl.
// The host must sit within DomainSuffix, the path must not contain an
// excluded substring and must not end in an excluded extension.
func (c *SiteConfig) InScope(canonical string) bool {
	u, err := url.Parse(canonical)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if !hostInDomain(u.Hostname(), c.DomainSuffix) {
		return false
	}
	for _, sub := range c.ExcludedPathSubstrings {
		if sub != "" && strings.Contains(u.Path, sub) {
			return false
		}
	}
	if ext := strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), "."); ext != "" {
		for _, excluded := range c.ExcludedExtensions {
			if strings.TrimPrefix(strings.ToLower(excluded), ".") == ext {
				return false
			}
		}
	}
	return true
}

func hostInDomain(host, suffix string) bool {
	host = strings.ToLower(host)
	suffix = strings.ToLower(strings.TrimPrefix(suffix, "."))
	if suffix == "" {
		return false
	}
	return host == suffix || strings.HasSuffix(host, "."+suffix)
}
