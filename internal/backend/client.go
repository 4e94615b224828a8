// Package backend is the HTTP client for the remote travel API. It is a thin
// wrapper: it attaches the stored bearer credential to every request, decodes
// JSON bodies, and reports non-2xx statuses as errors. It performs no retries
// and enforces no timeouts; failures are the caller's to handle.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TokenSource yields the persisted bearer credential. The second return is
// false when no credential is stored, in which case the Authorization header
// is simply omitted and the server rejects the call.
type TokenSource interface {
	Token() (string, bool)
}

// StatusError reports a non-2xx response from the remote API.
type StatusError struct {
	Status int
	Path   string
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("backend: %s returned status %d", err.Path, err.Status)
}

// IsNotFound reports whether err is a remote 404.
func IsNotFound(err error) bool {
	statusErr := &StatusError{}
	return errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound
}

// Client calls the remote travel API under a fixed base URL.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{},
	}
}

// Get issues a GET and decodes the response body into out.
func (client *Client) Get(ctx context.Context, path string, out any) error {
	return client.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body; out may be nil.
func (client *Client) Post(ctx context.Context, path string, body any, out any) error {
	return client.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body; out may be nil.
func (client *Client) Put(ctx context.Context, path string, body any, out any) error {
	return client.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE and discards any response body.
func (client *Client) Delete(ctx context.Context, path string) error {
	return client.do(ctx, http.MethodDelete, path, nil, nil)
}

func (client *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token, ok := client.tokens.Token(); ok {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.http.Do(request)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &StatusError{Status: response.StatusCode, Path: path}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
