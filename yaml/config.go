// Package yaml loads site configurations from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/fwojciec/phonecrawl"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// DefaultFetchInterval is the fetch spacing of a site without a base preset.
const DefaultFetchInterval = time.Second

// File is the YAML form of a site configuration. Unset fields inherit
// from the Base preset, if any.
type File struct {
	// Base names a built-in preset to start from.
	Base string `yaml:"base"`

	Name               *string        `yaml:"name"`
	SeedURL            *string        `yaml:"seedUrl"`
	DomainSuffix       *string        `yaml:"domainSuffix"`
	ExcludedPaths      []string       `yaml:"excludedPaths"`
	ExcludedExtensions []string       `yaml:"excludedExtensions"`
	PhonePattern       *string        `yaml:"phonePattern"`
	Locale             *Locale        `yaml:"locale"`
	MinFetchInterval   *time.Duration `yaml:"minFetchInterval"`
	PageCap            *int           `yaml:"pageCap"`
}

// Locale is the YAML form of phonecrawl.PhoneLocale.
type Locale struct {
	CountryCode   string   `yaml:"countryCode"`
	TrunkPrefix   string   `yaml:"trunkPrefix"`
	Length        int      `yaml:"length"`
	LeadingDigits []string `yaml:"leadingDigits"`
}

// LoadSiteConfig loads and validates a site configuration from a YAML file.
// If the file does not exist, the error wraps ErrConfigNotFound and has
// code ENOTFOUND.
func LoadSiteConfig(path string) (*phonecrawl.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w", ErrConfigNotFound, phonecrawl.Errorf(phonecrawl.ENOTFOUND, "config file %q not found", path))
		}
		return nil, err
	}
	return ParseSiteConfig(bytes.NewReader(data))
}

// ParseSiteConfig decodes and validates a site configuration.
// Unknown keys are rejected.
func ParseSiteConfig(r io.Reader) (*phonecrawl.SiteConfig, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, phonecrawl.Errorf(phonecrawl.EINVALID, "invalid site config: %v", err)
	}

	site, err := f.SiteConfig()
	if err != nil {
		return nil, err
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}
	return site, nil
}

// SiteConfig resolves the file against its base preset.
// The result is not validated.
func (f *File) SiteConfig() (*phonecrawl.SiteConfig, error) {
	var site phonecrawl.SiteConfig
	if f.Base != "" {
		base, err := phonecrawl.LookupSite(f.Base)
		if err != nil {
			return nil, err
		}
		site = base
	} else {
		site = phonecrawl.SiteConfig{
			ExcludedPathSubstrings: slices.Clone(phonecrawl.DefaultExcludedPaths),
			ExcludedExtensions:     slices.Clone(phonecrawl.DefaultExcludedExtensions),
			MinFetchInterval:       DefaultFetchInterval,
		}
	}

	if f.Name != nil {
		site.Name = *f.Name
	}
	if f.SeedURL != nil {
		site.SeedURL = *f.SeedURL
	}
	if f.DomainSuffix != nil {
		site.DomainSuffix = *f.DomainSuffix
	}
	if f.ExcludedPaths != nil {
		site.ExcludedPathSubstrings = f.ExcludedPaths
	}
	if f.ExcludedExtensions != nil {
		site.ExcludedExtensions = f.ExcludedExtensions
	}
	if f.PhonePattern != nil {
		site.PhonePattern = *f.PhonePattern
	}
	if f.Locale != nil {
		site.Locale = phonecrawl.PhoneLocale{
			CountryCode:   f.Locale.CountryCode,
			TrunkPrefix:   f.Locale.TrunkPrefix,
			Length:        f.Locale.Length,
			LeadingDigits: f.Locale.LeadingDigits,
		}
	}
	if f.MinFetchInterval != nil {
		site.MinFetchInterval = *f.MinFetchInterval
	}
	if f.PageCap != nil {
		site.PageCap = *f.PageCap
	}

	if site.Name == "" {
		return nil, phonecrawl.Errorf(phonecrawl.EINVALID, "site name required")
	}
	return &site, nil
}
