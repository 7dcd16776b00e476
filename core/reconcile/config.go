package reconcile

import (
	"golang.org/x/text/language"
)

// Config holds configuration for the dataset reconciler.
type Config struct {
	// Locale is the BCP 47 tag whose collation orders names within a role.
	Locale string `mapstructure:"locale" default:"zh"`
	// CacheTTLSeconds keeps built datasets for this long; 0 disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}

// LocaleTag parses Locale, falling back to Chinese when it is empty or invalid.
func (c Config) LocaleTag() language.Tag {
	if c.Locale == "" {
		return language.Chinese
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Chinese
	}
	return tag
}
