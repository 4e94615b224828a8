// Package store is the process-wide application state: the logged-in flag,
// transient UI state, and the cached mirror of the remote API's profile,
// itinerary, and memory collections. Handlers read snapshots from it and
// route every mutation through it; nothing else may hold the collections.
//
// The cache is synchronized by refetch-after-write: a mutation calls the
// remote API and then re-runs the matching fetch, except for the handful of
// deliberately optimistic local writes noted on each method. Every fetch
// replaces its slice wholesale, last writer wins.
package store

import (
	"context"
	"log"
	"sync"

	"github.com/wanderhq/wander/internal/models"
)

// Backend is the slice of the API client the store uses.
type Backend interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body any, out any) error
	Put(ctx context.Context, path string, body any, out any) error
	Delete(ctx context.Context, path string) error
}

// SessionSource reports whether a durable credential is present.
type SessionSource interface {
	Token() (string, bool)
}

// fetchSequence orders overlapping fetches of one cache slice. Tickets are
// issued before the network call and a response commits only if nothing
// later-issued has committed already, so a slow stale response can never
// clobber a fresher one. Both methods require the store lock.
type fetchSequence struct {
	issued    uint64
	committed uint64
}

func (sequence *fetchSequence) issue() uint64 {
	sequence.issued++
	return sequence.issued
}

func (sequence *fetchSequence) commit(ticket uint64) bool {
	if ticket <= sequence.committed {
		return false
	}
	sequence.committed = ticket
	return true
}

// Store owns all five state slices. Methods are safe for concurrent use.
type Store struct {
	backend Backend

	mu          sync.Mutex
	loggedIn    bool
	searchQuery string
	sidebarOpen bool
	profile     models.UserProfile
	itineraries []models.Itinerary
	memories    []models.Memory

	profileSeq   fetchSequence
	itinerarySeq fetchSequence
	memorySeq    fetchSequence
}

// New builds the store and hydrates the logged-in flag from the durable
// credential store. This check happens exactly once; later divergence
// between flag and credential is the remote server's to reject.
func New(apiClient Backend, session SessionSource) *Store {
	_, hasToken := session.Token()
	return &Store{
		backend:     apiClient,
		loggedIn:    hasToken,
		profile:     models.PlaceholderProfile(),
		itineraries: []models.Itinerary{},
		memories:    []models.Memory{},
	}
}

// Start kicks off the initial background refresh when a persisted session
// was restored. Call once after New.
func (store *Store) Start(ctx context.Context) {
	if store.LoggedIn() {
		go store.RefreshAll(ctx)
	}
}

// SetLoggedIn flips the session flag. Transitioning to true triggers the
// three collection fetches in the background. Transitioning to false only
// flips the flag; clearing the persisted credential is the caller's
// precondition, and the cached slices are left as they are.
func (store *Store) SetLoggedIn(loggedIn bool) {
	store.mu.Lock()
	changed := store.loggedIn != loggedIn
	store.loggedIn = loggedIn
	store.mu.Unlock()

	if changed && loggedIn {
		go store.RefreshAll(context.Background())
	}
}

func (store *Store) LoggedIn() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loggedIn
}

func (store *Store) SetSearchQuery(query string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.searchQuery = query
}

func (store *Store) SearchQuery() string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.searchQuery
}

func (store *Store) SetSidebarOpen(open bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.sidebarOpen = open
}

func (store *Store) SidebarOpen() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.sidebarOpen
}

func (store *Store) Profile() models.UserProfile {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.profile
}

// Itineraries returns a copy of the cached itinerary list.
func (store *Store) Itineraries() []models.Itinerary {
	store.mu.Lock()
	defer store.mu.Unlock()
	trips := make([]models.Itinerary, len(store.itineraries))
	copy(trips, store.itineraries)
	return trips
}

// Memories returns a copy of the cached memory list.
func (store *Store) Memories() []models.Memory {
	store.mu.Lock()
	defer store.mu.Unlock()
	memories := make([]models.Memory, len(store.memories))
	copy(memories, store.memories)
	return memories
}

// RefreshAll fetches the profile and both collections. Failures are logged
// per slice and do not stop the others.
func (store *Store) RefreshAll(ctx context.Context) {
	_ = store.RefreshProfile(ctx)
	_ = store.RefreshItineraries(ctx)
	_ = store.RefreshMemories(ctx)
}

// RefreshProfile fetches the profile record and replaces the cached one.
// On failure the previous profile stays.
func (store *Store) RefreshProfile(ctx context.Context) error {
	store.mu.Lock()
	ticket := store.profileSeq.issue()
	store.mu.Unlock()

	var fetched models.UserProfile
	if err := store.backend.Get(ctx, "/profile", &fetched); err != nil {
		log.Printf("store: fetch profile failed: %v", err)
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.profileSeq.commit(ticket) {
		store.profile = fetched
	}
	return nil
}

// RefreshItineraries fetches the itinerary collection and replaces the
// cached slice wholesale. On failure the previous slice stays.
func (store *Store) RefreshItineraries(ctx context.Context) error {
	store.mu.Lock()
	ticket := store.itinerarySeq.issue()
	store.mu.Unlock()

	var fetched []models.Itinerary
	if err := store.backend.Get(ctx, "/itineraries", &fetched); err != nil {
		log.Printf("store: fetch itineraries failed: %v", err)
		return err
	}
	if fetched == nil {
		fetched = []models.Itinerary{}
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.itinerarySeq.commit(ticket) {
		store.itineraries = fetched
	}
	return nil
}

// RefreshMemories fetches the memory collection and replaces the cached
// slice wholesale. On failure the previous slice stays.
func (store *Store) RefreshMemories(ctx context.Context) error {
	store.mu.Lock()
	ticket := store.memorySeq.issue()
	store.mu.Unlock()

	var fetched []models.Memory
	if err := store.backend.Get(ctx, "/memories", &fetched); err != nil {
		log.Printf("store: fetch memories failed: %v", err)
		return err
	}
	if fetched == nil {
		fetched = []models.Memory{}
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.memorySeq.commit(ticket) {
		store.memories = fetched
	}
	return nil
}
