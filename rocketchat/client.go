// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/rocketdesk/lib/netutil"
	"github.com/bureau-foundation/rocketdesk/lib/version"
)

// REST endpoints, relative to the server base URL.
const (
	EndpointLogin          = "api/v1/login"
	EndpointChannelsJoined = "api/v1/channels.list.joined"
	EndpointRoomsGet       = "api/v1/rooms.get"
)

// Request headers.
const (
	headerAuthToken = "X-Auth-Token"
	headerUserID    = "X-User-Id"
	headerRequestID = "X-Request-Id"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// ServerURL is the base URL of the Rocket.Chat server
	// (e.g., "https://chat.example.com").
	ServerURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Client sends requests to one Rocket.Chat server. It holds no
// authentication state; authenticated requests take a Snapshot.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// response is a completed HTTP exchange whose body is valid JSON.
type response struct {
	statusCode int
	body       []byte
}

func (r response) ok() bool { return r.statusCode >= 200 && r.statusCode < 300 }

// NewClient creates a Client. The server URL must be absolute http or
// https; a trailing slash is stripped.
func NewClient(config ClientConfig) (*Client, error) {
	baseURL, err := normalizeServerURL(config.ServerURL)
	if err != nil {
		return nil, err
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func normalizeServerURL(serverURL string) (string, error) {
	if serverURL == "" {
		return "", fmt.Errorf("rocketchat: ServerURL is required")
	}
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("rocketchat: invalid ServerURL %q: %w", serverURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("rocketchat: ServerURL %q must use http or https", serverURL)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("rocketchat: ServerURL %q has no host", serverURL)
	}
	return strings.TrimRight(serverURL, "/"), nil
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string { return c.baseURL }

// CloseIdleConnections closes idle connections in the transport's pool.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// post sends body as a JSON object to endpoint without authentication.
func (c *Client) post(ctx context.Context, endpoint string, body map[string]string) (response, error) {
	return c.doRequest(ctx, http.MethodPost, endpoint, nil, body)
}

// get sends an authenticated GET to endpoint using the user id and token
// from snapshot.
func (c *Client) get(ctx context.Context, endpoint string, snapshot Snapshot) (response, error) {
	return c.doRequest(ctx, http.MethodGet, endpoint, &snapshot, nil)
}

// doRequest performs one HTTP exchange. Any response whose body is JSON
// is returned without error regardless of status code, because the
// server reports failures as {"status":"error"} bodies on 4xx
// responses. A non-JSON body is an *HTTPError.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, auth *Snapshot, requestBody any) (response, error) {
	requestURL := c.baseURL + "/" + endpoint

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return response{}, fmt.Errorf("rocketchat: encoding %s request body: %w", endpoint, err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return response{}, fmt.Errorf("rocketchat: creating %s %s request: %w", method, endpoint, err)
	}

	requestID := newRequestID()
	request.Header.Set(headerRequestID, requestID)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", version.UserAgent())
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if auth != nil {
		request.Header.Set(headerAuthToken, auth.AuthToken)
		request.Header.Set(headerUserID, auth.UserID)
	}

	start := time.Now()
	httpResponse, err := c.httpClient.Do(request)
	if err != nil {
		return response{}, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, endpoint, err)
	}
	defer httpResponse.Body.Close()

	responseBody, err := netutil.ReadResponse(httpResponse.Body)
	if err != nil {
		return response{}, fmt.Errorf("%w: reading %s response: %w", ErrTransport, endpoint, err)
	}

	c.logger.Debug("rocketchat request",
		"method", method,
		"endpoint", endpoint,
		"status", httpResponse.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if !json.Valid(responseBody) {
		return response{}, &HTTPError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: httpResponse.StatusCode,
			Excerpt:    netutil.Excerpt(responseBody),
		}
	}

	return response{statusCode: httpResponse.StatusCode, body: responseBody}, nil
}

// newRequestID returns a time-ordered UUIDv7, falling back to a random
// UUIDv4 if the v7 generator fails.
func newRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
