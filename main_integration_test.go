// Copyright 2026, the msgrate contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build integration

/*
To run these tests, specify `-tags=integration` when running `go test`.
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	// Server configuration constants.
	host      = "127.0.0.1:8282"
	authority = "http://127.0.0.1:8282"

	// Polling constants.
	retryCount  = 10
	dialTimeout = 250 * time.Millisecond
)

// httpTestCase defines a test case.
type httpTestCase struct {
	URL                string
	Method             string
	ExpectedStatusCode int

	// POST requests specific fields
	FormData map[string]string
}

// setDefault sets the default values for the test case.
func (c *httpTestCase) setDefault() {
	if c.ExpectedStatusCode == 0 {
		c.ExpectedStatusCode = 200
	}
}

// TestMain is used for global setup and teardown.
//
// It starts the server against a throwaway database and waits for it to be
// available before running tests.
func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "msgrate-integration-*")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmp)

	os.Setenv("MSGRATE_HOST", "127.0.0.1")
	os.Setenv("MSGRATE_PORT", "8282")
	os.Setenv("MSGRATE_DATABASE", filepath.Join(tmp, "ratings.db"))
	os.Setenv("MSGRATE_RATERS", "alice")

	go func() {
		if err := run(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for the server.
	if !waitForServerReady() {
		log.Fatalf("Server did not start in time")
	}

	os.Exit(m.Run())
}

// waitForServerReady polls the server until it's available or the retries are exhausted.
func waitForServerReady() bool {
	for range retryCount {
		conn, err := net.DialTimeout("tcp", host, dialTimeout)
		if err == nil {
			_ = conn.Close()

			return true // Server is up.
		}

		time.Sleep(dialTimeout)
	}

	return false
}

// TestBasicAllRoutes tests all basic routes of the server.
func TestBasicAllRoutes(t *testing.T) {
	t.Parallel()

	testCases := []httpTestCase{
		{
			URL:    "/",
			Method: http.MethodGet,
		},
		{
			URL:    "/about",
			Method: http.MethodGet,
		},
		{
			URL:    "/robots.txt",
			Method: http.MethodGet,
		},
		{
			URL:    "/css/style.css",
			Method: http.MethodGet,
		},
		{
			URL:    "/js/rating-form.js",
			Method: http.MethodGet,
		},

		// Message detail pages, from the embedded catalogue.
		{
			URL:    "/message/compiler.err.premature.eof",
			Method: http.MethodGet,
		},
		{
			URL:    "/message/compiler.err.cant.resolve",
			Method: http.MethodGet,
		},
		{
			URL:                "/message/compiler.err.no.such.message",
			Method:             http.MethodGet,
			ExpectedStatusCode: http.StatusNotFound,
		},

		// The JSON API.
		{
			URL:    "/api/message/compiler.err.premature.eof",
			Method: http.MethodGet,
		},
		{
			URL:                "/api/message/compiler.err.no.such.message",
			Method:             http.MethodGet,
			ExpectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s %s", tc.Method, tc.URL), func(t *testing.T) {
			t.Parallel()
			tc.setDefault()

			resp := makeRequest(t, buildRequest(t, authority+tc.URL, tc.Method))
			defer resp.Body.Close()

			if resp.StatusCode != tc.ExpectedStatusCode {
				t.Errorf("expected status %d, got %d", tc.ExpectedStatusCode, resp.StatusCode)
			}
		})
	}
}

// TestRatingSubmission submits a rating end to end.
func TestRatingSubmission(t *testing.T) {
	submit := httpTestCase{
		URL:    "/message/compiler.err.premature.eof/rating",
		Method: http.MethodPost,
		FormData: map[string]string{
			"tag-soup": "on",
		},
	}
	submit.setDefault()

	resp := makeRequest(t, buildRequestWithFormData(t, authority+submit.URL, submit.Method, submit.FormData))
	defer resp.Body.Close()

	// The redirect to the next message is followed by the client.
	if resp.StatusCode != submit.ExpectedStatusCode {
		t.Errorf("expected status %d, got %d", submit.ExpectedStatusCode, resp.StatusCode)
	}

	// An indeterminate submission is rejected.
	rejected := makeRequest(t, buildRequestWithFormData(t, authority+submit.URL, submit.Method, nil))
	defer rejected.Body.Close()

	if rejected.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, rejected.StatusCode)
	}
}

func buildRequest(t *testing.T, link, method string) *http.Request {
	t.Helper()

	req, err := http.NewRequestWithContext(context.TODO(), method, link, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	return req
}

func buildRequestWithFormData(t *testing.T, link, method string, formData map[string]string) *http.Request {
	t.Helper()

	form := url.Values{}

	for k, v := range formData {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(context.TODO(), method, link, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func makeRequest(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	return resp
}
