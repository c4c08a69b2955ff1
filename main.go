// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Msgrate is a browser-based viewer and rating tool for the javac diagnostic
message catalogue.
*/
package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"codeberg.org/msgrate/msgrate/config"
	"codeberg.org/msgrate/msgrate/core/audit"
	"codeberg.org/msgrate/msgrate/core/catalogue"
	"codeberg.org/msgrate/msgrate/core/store"
	"codeberg.org/msgrate/msgrate/server/router"
	"codeberg.org/msgrate/msgrate/server/routes"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout time.Duration = 15 * time.Second
	readTimeout       time.Duration = 15 * time.Second
	writeTimeout      time.Duration = 10 * time.Second
	idleTimeout       time.Duration = 30 * time.Second

	serverShutdownDeadline time.Duration = 5 * time.Second
)

var (
	errChmodSocket = errors.New("failed to change unix socket permissions")
	errChownSocket = errors.New("failed to change unix socket ownership")
)

// embeddedCatalogue holds the bundled compiler.properties, used when no
// external catalogue path is configured.
//
//go:embed data/compiler.properties
var embeddedCatalogue embed.FS

const embeddedCataloguePath = "data/compiler.properties"

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run orchestrates the application startup and graceful shutdown.
func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cat, err := loadCatalogue()
	if err != nil {
		return fmt.Errorf("failed to load catalogue: %w", err)
	}

	log.Info().
		Str("resource", cat.Resource()).
		Str("jdk_version", cat.Source().JDKVersion).
		Int("messages", cat.Len()).
		Msg("Loaded message catalogue")

	ratingStore, err := openStore(cat)
	if err != nil {
		return err
	}
	defer ratingStore.Close()

	routes.Setup(cat, ratingStore, config.Global.TagCatalogue())

	router := router.NewRouter()
	router.DefineRoutes()
	router.RegisterMiddleware()

	server := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	// Shut down on SIGINT/SIGTERM by cancelling the group context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		listener, err := chooseListener()
		if err != nil {
			return fmt.Errorf("failed to create listener: %w", err)
		}

		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-ctx.Done()

		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownDeadline)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

// loadCatalogue loads the configured compiler.properties file, falling back
// to the embedded copy when no path is configured.
func loadCatalogue() (*catalogue.Catalogue, error) {
	source := config.Global.CatalogueSource()

	if path := config.Global.Catalogue.Path; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalogue %s: %w", path, err)
		}
		defer f.Close()

		return catalogue.Load(f, filepath.Base(path), source)
	}

	return catalogue.LoadFS(embeddedCatalogue, embeddedCataloguePath, source)
}

// openStore opens the ratings database and seeds it with the catalogue and
// the configured raters.
func openStore(cat *catalogue.Catalogue) (*store.Store, error) {
	path := config.Global.Database.Path

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ratings database: %w", err)
	}

	ctx := context.Background()

	if err := s.Init(ctx, cat, config.Global.Rating.Raters); err != nil {
		_ = s.Close()

		return nil, fmt.Errorf("failed to initialize ratings database: %w", err)
	}

	// Init leaves the originally recorded source row untouched, so a hash
	// mismatch here means the catalogue file changed since the ratings were
	// collected.
	storedHash, err := s.StoredSourceHash(ctx, cat.Source().JDKVersion)
	if err != nil {
		_ = s.Close()

		return nil, fmt.Errorf("failed to read stored catalogue hash: %w", err)
	}

	if storedHash != cat.FileSHA256() {
		log.Warn().
			Str("stored", storedHash).
			Str("loaded", cat.FileSHA256()).
			Msg("Catalogue file changed since ratings were collected")
	}

	raters, err := s.Raters(ctx)
	if err != nil {
		_ = s.Close()

		return nil, fmt.Errorf("failed to list raters: %w", err)
	}

	log.Info().
		Str("path", path).
		Strs("raters", raters).
		Msg("Opened ratings database")

	return s, nil
}

func chooseListener() (net.Listener, error) {
	// Check if we should use a Unix domain socket
	if config.Global.Basic.UnixSocket != "" {
		unixAddr := config.Global.Basic.UnixSocket

		unixListener, err := (&net.ListenConfig{}).Listen(context.Background(), "unix", unixAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to start Unix socket listener on %v: %w", unixAddr, err)
		}

		if err = setupSocket(); err != nil {
			_ = unixListener.Close()

			return nil, err
		}

		// Assign the listener and log where we are listening
		log.Info().
			Str("address", unixAddr).
			Msg("Listening on Unix domain socket")

		return unixListener, nil
	}

	// Otherwise, fall back to TCP listener
	addr := net.JoinHostPort(config.Global.Basic.Host, config.Global.Basic.Port)

	tcpListener, err := (&net.ListenConfig{}).Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	addr = tcpListener.Addr().String()

	// Extract the port for logging
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		_ = tcpListener.Close()

		return nil, fmt.Errorf("failed to parse listener address %q: %w", addr, err)
	}

	// Log the address and convenient URL for local development
	log.Info().
		Str("address", addr).
		Str("port", port).
		Str("url", fmt.Sprintf("http://localhost:%v/", port)).
		Msg("Listening on address")

	return tcpListener, nil
}

func setupSocket() error {
	cfg := config.Global.Basic

	if cfg.UnixSocket == "" {
		return nil
	}

	uid, gid := -1, -1

	var err error

	if cfg.UnixSocketUser != "" {
		uid, err = parseUserOrGroupID(cfg.UnixSocketUser, "user")
		if err != nil {
			return err
		}
	}

	if cfg.UnixSocketGroup != "" {
		gid, err = parseUserOrGroupID(cfg.UnixSocketGroup, "group")
		if err != nil {
			return err
		}
	}

	if uid != -1 || gid != -1 {
		if err := os.Chown(cfg.UnixSocket, uid, gid); err != nil {
			return fmt.Errorf("%w: %w", errChownSocket, err)
		}
	}

	if err := os.Chmod(cfg.UnixSocket, cfg.UnixSocketPermissions); err != nil {
		return fmt.Errorf("%w: %w", errChmodSocket, err)
	}

	return nil
}

// parseUserOrGroupID attempts to parse a user or group identifier.
//
// It first tries to convert the value to an integer. If that fails, it
// performs a system lookup for the given kind ("user" or "group").
func parseUserOrGroupID(value, kind string) (int, error) {
	// Try to parse as a numeric ID first.
	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}

	// If parsing fails, assume it's a name and look it up.
	var idStr string

	if kind == "user" {
		u, err := user.Lookup(value)
		if err != nil {
			return -1, fmt.Errorf("failed to lookup user '%s': %w", value, err)
		}

		idStr = u.Uid
	} else { // kind == "group"
		g, err := user.LookupGroup(value)
		if err != nil {
			return -1, fmt.Errorf("failed to lookup group '%s': %w", value, err)
		}

		idStr = g.Gid
	}

	// Parse the ID from the looked-up struct.
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return -1, fmt.Errorf("failed to parse %s ID from looked-up value '%s': %w", kind, value, err)
	}

	return id, nil
}
