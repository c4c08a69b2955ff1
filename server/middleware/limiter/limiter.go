// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter rate limits rating submissions per client address.

Read-only traffic is never limited; only POST requests consume tokens.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/msgrate/msgrate/config"
)

// clientIdleEviction is how long an idle client entry survives.
const clientIdleEviction = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	mu      sync.Mutex
	clients map[string]*client
	stop    chan struct{}
)

// Init prepares the limiter state and starts the eviction loop. Calling it
// again resets the state and stops the previous loop.
func Init() {
	mu.Lock()
	defer mu.Unlock()

	clients = make(map[string]*client)

	if stop != nil {
		close(stop)
	}

	stop = make(chan struct{})

	go evictLoop(stop)
}

// Evaluate is a middleware that applies the submission rate limit.
func Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if r.Method != http.MethodPost {
		next.ServeHTTP(w, r)

		return
	}

	if !limiterFor(clientKey(r)).Allow() {
		log.Warn().
			Str("client", clientKey(r)).
			Str("url", r.URL.String()).
			Msg("Submission rate limit exceeded")

		w.Header().Set("Retry-After", "60")
		http.Error(w, "too many submissions, slow down", http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}

// clientKey derives the limiter key for a request.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func limiterFor(key string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	c, ok := clients[key]
	if !ok {
		perMinute := rate.Limit(float64(config.Global.Limiter.SubmissionsPerMinute) / 60.0)
		c = &client{limiter: rate.NewLimiter(perMinute, config.Global.Limiter.Burst)}
		clients[key] = c
	}

	c.lastSeen = time.Now()

	return c.limiter
}

func evictLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			evictIdle()
		}
	}
}

func evictIdle() {
	mu.Lock()
	defer mu.Unlock()

	for key, c := range clients {
		if time.Since(c.lastSeen) > clientIdleEviction {
			delete(clients, key)
		}
	}
}
