// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"regexp"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"

	"codeberg.org/msgrate/msgrate/server/utils"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errUnixSocketUserDoesNotExist   = errors.New("user does not exist")
	errUnixSocketGroupDoesNotExist  = errors.New("group does not exist")
	errInvalidCatalogueSHA256       = errors.New("catalogue.sha256 must be a 64-character hex digest")
	errEmptyDatabasePath            = errors.New("database.path cannot be empty")
	errNoRaters                     = errors.New("rating.raters must list at least one rater")
	errUnknownDefaultRater          = errors.New("rating.defaultRater is not listed in rating.raters")
	errEmptyTagID                   = errors.New("rating tag id cannot be empty")
	errEmptyTagLabel                = errors.New("rating tag label cannot be empty")
	errDuplicateTagID               = errors.New("duplicate rating tag id")
	errInvalidSubmissionRate        = errors.New("limiter.submissionsPerMinute must be positive when limiter is enabled")
	errInvalidSubmissionBurst       = errors.New("limiter.burst must be positive when limiter is enabled")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
	digitsRegexp         = regexp.MustCompile(`^[0-9]+$`)
	sha256HexRegexp      = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)
)

// validateAndSet validates the server configuration and populates some fields.
func (cfg *ServerConfig) validateAndSet() error {
	// Handle listener configuration
	if cfg.Basic.UnixSocket != "" {
		if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
			return errUnixSocketWithHostPort
		}

		// Handle unix socket permissions
		switch {
		case cfg.Basic.RawUnixSocketPermissions == "":
			cfg.Basic.UnixSocketPermissions = 0o666
		case fileModeOctalRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
			rawModeUint64, _ := strconv.ParseUint(cfg.Basic.RawUnixSocketPermissions, 8, 32)

			cfg.Basic.UnixSocketPermissions = os.FileMode(rawModeUint64)
		case fileModeStringRegexp.MatchString(cfg.Basic.RawUnixSocketPermissions):
			mode := os.FileMode(0)

			for i, c := range cfg.Basic.RawUnixSocketPermissions {
				// If permission bit is set
				if c != '-' {
					// Set i-th bit from the end
					const bitsInByte = 8

					mode |= 1 << (bitsInByte - i)
				}
			}

			cfg.Basic.UnixSocketPermissions = mode
		default:
			return errUnixSocketInvalidPermissions
		}

		// Check if user is valid
		if cfg.Basic.UnixSocketUser != "" {
			if digitsRegexp.MatchString(cfg.Basic.UnixSocketUser) {
				if _, err := user.LookupId(cfg.Basic.UnixSocketUser); err != nil {
					return errUnixSocketUserDoesNotExist
				}
			} else {
				if _, err := user.Lookup(cfg.Basic.UnixSocketUser); err != nil {
					return errUnixSocketUserDoesNotExist
				}
			}
		}

		// Check if group is valid
		if cfg.Basic.UnixSocketGroup != "" {
			if digitsRegexp.MatchString(cfg.Basic.UnixSocketGroup) {
				if _, err := user.LookupGroupId(cfg.Basic.UnixSocketGroup); err != nil {
					return errUnixSocketGroupDoesNotExist
				}
			} else {
				if _, err := user.LookupGroup(cfg.Basic.UnixSocketGroup); err != nil {
					return errUnixSocketGroupDoesNotExist
				}
			}
		}
	} else {
		// Set TCP defaults
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = "localhost"
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = "8282"
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}
	}

	// Validate catalogue digest
	if cfg.Catalogue.SHA256 != "" && !sha256HexRegexp.MatchString(cfg.Catalogue.SHA256) {
		return errInvalidCatalogueSHA256
	}

	if cfg.Database.Path == "" {
		return errEmptyDatabasePath
	}

	if len(cfg.Rating.Raters) == 0 {
		return errNoRaters
	}

	if cfg.Rating.DefaultRater == "" {
		cfg.Rating.DefaultRater = cfg.Rating.Raters[0]
		log.Info().
			Str("rater", cfg.Rating.DefaultRater).
			Msg("Using first configured rater as default")
	}

	if !slices.Contains(cfg.Rating.Raters, cfg.Rating.DefaultRater) {
		return errUnknownDefaultRater
	}

	// Validate a tag catalogue override
	seenTagIDs := make(map[string]struct{}, len(cfg.Rating.Tags))

	for _, tag := range cfg.Rating.Tags {
		if tag.ID == "" {
			return errEmptyTagID
		}

		if tag.Label == "" {
			return fmt.Errorf("%w: %s", errEmptyTagLabel, tag.ID)
		}

		if _, seen := seenTagIDs[tag.ID]; seen {
			return fmt.Errorf("%w: %s", errDuplicateTagID, tag.ID)
		}

		seenTagIDs[tag.ID] = struct{}{}
	}

	// Validate RepoURL
	repoURL, err := utils.ParseURL(cfg.Instance.RepoURL, "Repo")
	if err != nil {
		return fmt.Errorf("invalid repo URL: %w", err)
	}

	cfg.Instance.RepoURL = repoURL.String()

	// Skip validating Limiter configuration if it's not enabled
	if !cfg.Limiter.Enabled {
		return nil
	}

	if cfg.Limiter.SubmissionsPerMinute <= 0 {
		return errInvalidSubmissionRate
	}

	if cfg.Limiter.Burst <= 0 {
		return errInvalidSubmissionBurst
	}

	return nil
}
