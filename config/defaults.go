// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "time"

const (
	// Default HTTP cache max age in seconds.
	defaultHTTPCacheMaxAgeSeconds = 30
	// Default HTTP cache stale while revalidate in seconds.
	defaultHTTPCacheStaleWhileRevalidateSeconds = 60
)

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "8282"

	cfg.Catalogue.Path = ""
	cfg.Catalogue.JDKVersion = "18+37"
	cfg.Catalogue.SHA256 = ""
	cfg.Catalogue.CommitSHA = "0f2113cee79b9645105b4753c7d7eacb83b872c2"

	cfg.Database.Path = "./data/ratings.db"

	cfg.Rating.Raters = []string{"default"}

	cfg.HTTPCache.MaxAge = defaultHTTPCacheMaxAgeSeconds * time.Second
	cfg.HTTPCache.StaleWhileRevalidate = defaultHTTPCacheStaleWhileRevalidateSeconds * time.Second

	cfg.Limiter.Enabled = false
	cfg.Limiter.SubmissionsPerMinute = 60
	cfg.Limiter.Burst = 10

	cfg.Instance.RepoURL = "https://codeberg.org/msgrate/msgrate"

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
