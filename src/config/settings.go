package config

import (
	"log"
	"time"
)

// ApplySettings overlays values from the settings table. A non-empty setting
// wins over the environment.
func ApplySettings(cfg *Config, get func(name string) string) {
	if v := get("welcome_faq_id"); v != "" {
		cfg.WelcomeFAQID = v
	}
	if v := get("faq_cache_ttl"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("config: ignoring setting faq_cache_ttl=%q: %v", v, err)
		} else {
			cfg.FAQCacheTTL = ttl
		}
	}
}
