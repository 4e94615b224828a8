// Package api serves the browser-facing surface: page view models, the
// mutation endpoints the pages post to, and the login route guard. Handlers
// hold no state of their own; they read snapshots from the store, project
// them through the views package, and route writes back through the store.
package api

import (
	"time"

	"github.com/wanderhq/wander/internal/backend"
	"github.com/wanderhq/wander/internal/store"
)

// Credentials is the durable token store the auth handlers write to.
type Credentials interface {
	Token() (string, bool)
	SetToken(token string) error
	ClearToken() error
}

type Handler struct {
	store       *store.Store
	backend     *backend.Client
	credentials Credentials
	location    *time.Location
}

func NewHandler(appStore *store.Store, apiClient *backend.Client, credentials Credentials, location *time.Location) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		store:       appStore,
		backend:     apiClient,
		credentials: credentials,
		location:    location,
	}
}
