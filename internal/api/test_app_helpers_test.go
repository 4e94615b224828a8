package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wanderhq/wander/internal/backend"
	"github.com/wanderhq/wander/internal/backendtest"
	"github.com/wanderhq/wander/internal/store"
)

type testApp struct {
	app         *fiber.App
	remote      *backendtest.Server
	credentials *backendtest.MemoryCredentials
	store       *store.Store
}

// newTestApp wires the full serving stack against an in-memory remote API.
// The returned app starts logged out.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	remote := backendtest.New()
	t.Cleanup(remote.Close)

	credentials := &backendtest.MemoryCredentials{}
	apiClient := backend.NewClient(remote.URL, credentials)
	appStore := store.New(apiClient, credentials)
	handler := NewHandler(appStore, apiClient, credentials, time.UTC)

	app := fiber.New()
	RegisterRoutes(app, handler)

	return &testApp{app: app, remote: remote, credentials: credentials, store: appStore}
}

// newLoggedInTestApp persists a valid token before the store hydrates, so
// the app starts authenticated without a background refresh racing the test.
func newLoggedInTestApp(t *testing.T) *testApp {
	t.Helper()

	remote := backendtest.New()
	t.Cleanup(remote.Close)

	credentials := &backendtest.MemoryCredentials{}
	if err := credentials.SetToken(remote.IssueToken("user@example.com")); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	apiClient := backend.NewClient(remote.URL, credentials)
	appStore := store.New(apiClient, credentials)
	handler := NewHandler(appStore, apiClient, credentials, time.UTC)

	app := fiber.New()
	RegisterRoutes(app, handler)

	return &testApp{app: app, remote: remote, credentials: credentials, store: appStore}
}

// refresh synchronously pulls the remote collections into the store cache.
func (testApp *testApp) refresh(t *testing.T) {
	t.Helper()
	testApp.store.RefreshAll(context.Background())
}

func jsonRequest(t *testing.T, method string, path string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	return request
}

func decodeJSONBody(t *testing.T, body io.Reader, out any) {
	t.Helper()
	if err := json.NewDecoder(body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()
	payload := map[string]string{}
	decodeJSONBody(t, body, &payload)
	return payload["error"]
}
