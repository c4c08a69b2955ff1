// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	_ "codeberg.org/msgrate/msgrate/core/audit" // setup better logging format
	"codeberg.org/msgrate/msgrate/core/catalogue"
	"codeberg.org/msgrate/msgrate/core/tags"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"MSGRATE_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"MSGRATE_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"MSGRATE_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"MSGRATE_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
		UnixSocketUser           string      `env:"MSGRATE_UNIXSOCKET_USER" yaml:"unixSocketUser"`
		UnixSocketGroup          string      `env:"MSGRATE_UNIXSOCKET_GROUP" yaml:"unixSocketGroup"`
	} `yaml:"basic"`

	Catalogue struct {
		// Path points at an external compiler.properties file. Empty uses
		// the embedded catalogue.
		Path       string `env:"MSGRATE_CATALOGUE,overwrite" yaml:"path"`
		JDKVersion string `env:"MSGRATE_JDK_VERSION,overwrite" yaml:"jdkVersion"`
		// SHA256 is the expected hex digest of the catalogue file. Empty
		// disables verification.
		SHA256    string `env:"MSGRATE_CATALOGUE_SHA256,overwrite" yaml:"sha256"`
		CommitSHA string `env:"MSGRATE_COMMIT_SHA,overwrite" yaml:"commitSha"`
	} `yaml:"catalogue"`

	Database struct {
		Path string `env:"MSGRATE_DATABASE,overwrite" yaml:"path"`
	} `yaml:"database"`

	Rating struct {
		Raters       []string `env:"MSGRATE_RATERS,overwrite" yaml:"raters"`
		DefaultRater string   `env:"MSGRATE_DEFAULT_RATER,overwrite" yaml:"defaultRater"`

		// Tags overrides the built-in tag catalogue. Order is display order.
		Tags []tags.Tag `yaml:"tags"`
	} `yaml:"rating"`

	HTTPCache struct {
		MaxAge               time.Duration `env:"MSGRATE_CACHE_CONTROL_MAX_AGE,overwrite" yaml:"cacheControlMaxAge"`
		StaleWhileRevalidate time.Duration `env:"MSGRATE_CACHE_CONTROL_STALE_WHILE_REVALIDATE,overwrite" yaml:"cacheControlStaleWhileRevalidate"`
	} `yaml:"httpCache"`

	Limiter struct {
		Enabled              bool `env:"MSGRATE_LIMITER,overwrite" yaml:"enabled"`
		SubmissionsPerMinute int  `env:"MSGRATE_LIMITER_SUBMISSIONS_PER_MINUTE,overwrite" yaml:"submissionsPerMinute"`
		Burst                int  `env:"MSGRATE_LIMITER_BURST,overwrite" yaml:"burst"`
	} `yaml:"limiter"`

	Instance struct {
		StartingTime string `yaml:"-"`
		RepoURL      string `env:"MSGRATE_REPO_URL,overwrite" yaml:"repoUrl"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment bool `env:"MSGRATE_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"MSGRATE_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"MSGRATE_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"MSGRATE_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *ServerConfig) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	// Check if the -config flag was explicitly set by the user.
	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	var configFilePath string

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (MSGRATE_CONFIGFILE)
	// 3. Default path with fallback check
	if configFlagUserSet {
		configFilePath = parsedConfigFlagValue
	} else if envVar := os.Getenv("MSGRATE_CONFIGFILE"); envVar != "" {
		configFilePath = envVar
	} else {
		configFilePath = parsedConfigFlagValue
		// Perform a fallback check for "./config.yml".
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			ymlPath := "./config.yml"
			if _, statErr := os.Stat(ymlPath); statErr == nil {
				configFilePath = ymlPath
			}
		}
	}

	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	// Heuristically check for containerized environment and warn if host is not a wildcard address.
	if isContainerized() && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a containerized environment but host is not a wildcard address (e.g., '0.0.0.0' or '::'). This may prevent the service from being accessible outside the container.")
	}

	return nil
}

// CatalogueSource returns the configured catalogue provenance.
func (cfg *ServerConfig) CatalogueSource() catalogue.Source {
	return catalogue.Source{
		JDKVersion: cfg.Catalogue.JDKVersion,
		SHA256:     cfg.Catalogue.SHA256,
		CommitSHA:  cfg.Catalogue.CommitSHA,
	}
}

// TagCatalogue returns the configured tag catalogue, falling back to the
// built-in tags.
func (cfg *ServerConfig) TagCatalogue() []tags.Tag {
	if len(cfg.Rating.Tags) > 0 {
		return cfg.Rating.Tags
	}

	return tags.Defaults()
}

var staticSkippedPathPrefixes = []string{"/css/", "/js/"}

// ShouldSkipServerLogging determines if a request should bypass request logging.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}

// isContainerized checks for common indicators of a containerized environment.
//
// This is a heuristic and may not be 100% accurate.
func isContainerized() bool {
	// Check for a Kubernetes-injected environment variable.
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	// Check for existence of container-specific files.
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	if _, err := os.Stat("/.containerenv"); err == nil {
		return true
	}

	return false
}
