// Package apiclient is a typed HTTP client for the medtrack REST API. It
// attaches the bearer credential to every request, decodes JSON bodies and
// surfaces authentication failures as ErrUnauthorized so callers can force
// a logged-out state. It never retries and never queues requests.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthorized reports that the backend rejected the bearer credential.
var ErrUnauthorized = errors.New("apiclient: unauthorized")

// APIError carries a backend rejection verbatim: the HTTP status and the
// message body the backend returned.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("apiclient: request failed with status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Client for the given API base URL. httpClient is
// optional and defaults to a client with a request timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, token, method, path string, params url.Values, req, res interface{}) error {
	var body *bytes.Buffer
	if req != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(req); err != nil {
			return err
		}
	}

	u := c.baseURL + path
	if len(params) != 0 {
		u += "?" + params.Encode()
	}
	var httpReq *http.Request
	var err error
	if body != nil {
		httpReq, err = http.NewRequestWithContext(ctx, method, u, body)
	} else {
		httpReq, err = http.NewRequestWithContext(ctx, method, u, nil)
	}
	if err != nil {
		return err
	}
	if req != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpRes, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpRes.Body.Close()

	if httpRes.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}
	if httpRes.StatusCode >= 200 && httpRes.StatusCode < 300 {
		if res != nil {
			return json.NewDecoder(httpRes.Body).Decode(res)
		}
		return nil
	}

	var eb errorBody
	apiErr := &APIError{StatusCode: httpRes.StatusCode}
	if err := json.NewDecoder(httpRes.Body).Decode(&eb); err == nil {
		if eb.Error != "" {
			apiErr.Message = eb.Error
		} else {
			apiErr.Message = eb.Message
		}
	}
	return apiErr
}
