// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"codeberg.org/msgrate/msgrate/config"
	"codeberg.org/msgrate/msgrate/server/middleware"
)

func setupLimiter(t *testing.T, perMinute, burst int) {
	t.Helper()

	config.Global.Limiter.Enabled = true
	config.Global.Limiter.SubmissionsPerMinute = perMinute
	config.Global.Limiter.Burst = burst

	Init()
}

func postForm(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/message/compiler.err.error/rating", strings.NewReader("none=on"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = remoteAddr

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	return rr
}

func TestInitStopsPreviousEvictLoop(t *testing.T) {
	setupLimiter(t, 1, 1)
	first := stop

	Init()

	select {
	case <-first:
	default:
		t.Fatal("previous eviction loop was not stopped")
	}
}

func TestEvictIdleDropsStaleClients(t *testing.T) {
	setupLimiter(t, 1, 1)

	mu.Lock()
	clients["stale"] = &client{lastSeen: time.Now().Add(-2 * clientIdleEviction)}
	clients["fresh"] = &client{lastSeen: time.Now()}
	mu.Unlock()

	evictIdle()

	mu.Lock()
	defer mu.Unlock()
	assert.NotContains(t, clients, "stale")
	assert.Contains(t, clients, "fresh")
}

func TestEvaluateLimitsRepeatedSubmissions(t *testing.T) {
	setupLimiter(t, 1, 2)

	handler := middleware.Wrap(Evaluate, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	}))

	// The burst allows the first two submissions through.
	assert.Equal(t, http.StatusSeeOther, postForm(handler, "198.51.100.7:4242").Code)
	assert.Equal(t, http.StatusSeeOther, postForm(handler, "198.51.100.7:4242").Code)

	third := postForm(handler, "198.51.100.7:4242")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "60", third.Header().Get("Retry-After"))
}

func TestEvaluateIsPerClient(t *testing.T) {
	setupLimiter(t, 1, 1)

	handler := middleware.Wrap(Evaluate, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	}))

	assert.Equal(t, http.StatusSeeOther, postForm(handler, "198.51.100.7:4242").Code)
	assert.Equal(t, http.StatusTooManyRequests, postForm(handler, "198.51.100.7:4242").Code)

	// An unrelated client still has its full burst.
	assert.Equal(t, http.StatusSeeOther, postForm(handler, "203.0.113.9:4242").Code)
}

func TestEvaluateIgnoresReads(t *testing.T) {
	setupLimiter(t, 1, 1)

	handler := middleware.Wrap(Evaluate, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for range 20 {
		req := httptest.NewRequest(http.MethodGet, "/message/compiler.err.error", nil)
		req.RemoteAddr = "198.51.100.7:4242"

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	}
}
