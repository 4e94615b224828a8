package store

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/wanderhq/wander/internal/models"
)

// SaveProfile writes the edited profile to the remote server and, on
// success, overwrites the cached profile with the edited value directly.
// This is the one best-effort optimistic save: no refetch follows.
func (store *Store) SaveProfile(ctx context.Context, edited models.UserProfile) error {
	if err := store.backend.Put(ctx, "/profile", edited, nil); err != nil {
		return err
	}
	store.mu.Lock()
	store.profile = edited
	store.mu.Unlock()
	return nil
}

// CreateItinerary posts a new itinerary and resynchronizes by refetching
// the whole collection. A refetch failure after a successful create is
// logged, not surfaced; the next fetch heals the cache.
func (store *Store) CreateItinerary(ctx context.Context, draft models.Itinerary) error {
	if err := store.backend.Post(ctx, "/itineraries", draft, nil); err != nil {
		return err
	}
	_ = store.RefreshItineraries(ctx)
	return nil
}

// FetchItinerary loads one itinerary from the server, the authoritative
// read behind the details and edit views. The fresh record also replaces
// its cached copy when the collection already holds that id.
func (store *Store) FetchItinerary(ctx context.Context, id int) (models.Itinerary, error) {
	var trip models.Itinerary
	if err := store.backend.Get(ctx, fmt.Sprintf("/itineraries/%d", id), &trip); err != nil {
		return models.Itinerary{}, err
	}
	store.replaceCachedItinerary(trip)
	return trip, nil
}

// UpdateItinerary saves edits to one itinerary, then refetches that single
// record rather than the collection. Unlike profile saves this path is not
// optimistic; the server response is the value that lands in the cache.
func (store *Store) UpdateItinerary(ctx context.Context, id int, edited models.Itinerary) error {
	if err := store.backend.Put(ctx, fmt.Sprintf("/itineraries/%d", id), edited, nil); err != nil {
		return err
	}
	if _, err := store.FetchItinerary(ctx, id); err != nil {
		log.Printf("store: refetch itinerary %d after update failed: %v", id, err)
	}
	return nil
}

// DeleteItinerary removes an itinerary and refetches the collection so the
// cache reflects the server's list, not a local filter. The refetch runs
// only after a successful delete, mirroring the client this replaced.
func (store *Store) DeleteItinerary(ctx context.Context, id int) error {
	if err := store.backend.Delete(ctx, fmt.Sprintf("/itineraries/%d", id)); err != nil {
		log.Printf("store: delete itinerary %d failed: %v", id, err)
		return err
	}
	_ = store.RefreshItineraries(ctx)
	return nil
}

// SaveDayPlan creates or updates a day plan under its parent itinerary,
// then refetches the parent for authoritative nested state. Day plans are
// never patched in place: the whole parent record is replaced.
func (store *Store) SaveDayPlan(ctx context.Context, tripID int, plan models.DayPlan) error {
	var err error
	if plan.ID != 0 {
		err = store.backend.Put(ctx, fmt.Sprintf("/itineraries/%d/dayplans/%d", tripID, plan.ID), plan, nil)
	} else {
		err = store.backend.Post(ctx, fmt.Sprintf("/itineraries/%d/dayplans", tripID), plan, nil)
	}
	if err != nil {
		return err
	}
	if _, err := store.FetchItinerary(ctx, tripID); err != nil {
		log.Printf("store: refetch itinerary %d after day plan save failed: %v", tripID, err)
	}
	return nil
}

// CreateMemory posts a new memory and prepends the server's record to the
// cached list. Memory writes are optimistic: no refetch.
func (store *Store) CreateMemory(ctx context.Context, draft models.Memory) (models.Memory, error) {
	var created models.Memory
	if err := store.backend.Post(ctx, "/memories", draft, &created); err != nil {
		return models.Memory{}, err
	}
	store.mu.Lock()
	store.memories = append([]models.Memory{created}, store.memories...)
	store.mu.Unlock()
	return created, nil
}

// UpdateMemory saves edits to one memory and merges the edited value into
// the cached list in place. Optimistic: no refetch.
func (store *Store) UpdateMemory(ctx context.Context, id int, edited models.Memory) error {
	edited.ID = id
	if err := store.backend.Put(ctx, fmt.Sprintf("/memories/%d", id), edited, nil); err != nil {
		return err
	}
	store.mu.Lock()
	for index := range store.memories {
		if store.memories[index].ID == id {
			store.memories[index] = edited
		}
	}
	store.mu.Unlock()
	return nil
}

// DeleteMemory removes one memory on the server and filters it from the
// cached list locally, without a refetch.
func (store *Store) DeleteMemory(ctx context.Context, id int) error {
	if err := store.backend.Delete(ctx, fmt.Sprintf("/memories/%d", id)); err != nil {
		return err
	}
	store.mu.Lock()
	store.memories = withoutMemory(store.memories, func(memory models.Memory) bool {
		return memory.ID == id
	})
	store.mu.Unlock()
	return nil
}

// DeleteTripMemories deletes every memory of one trip with concurrent
// per-memory calls, then removes them from the cache only if all calls
// succeeded. All-or-nothing: one rejection leaves the cache untouched,
// even for memories the server already deleted; the next memories fetch
// reconciles that drift.
func (store *Store) DeleteTripMemories(ctx context.Context, tripID int) error {
	store.mu.Lock()
	ids := make([]int, 0)
	for _, memory := range store.memories {
		if memory.TripID == tripID {
			ids = append(ids, memory.ID)
		}
	}
	store.mu.Unlock()

	group, groupCtx := errgroup.WithContext(ctx)
	for _, id := range ids {
		group.Go(func() error {
			return store.backend.Delete(groupCtx, fmt.Sprintf("/memories/%d", id))
		})
	}
	if err := group.Wait(); err != nil {
		log.Printf("store: delete memories of trip %d failed: %v", tripID, err)
		return err
	}

	store.mu.Lock()
	store.memories = withoutMemory(store.memories, func(memory models.Memory) bool {
		return memory.TripID == tripID
	})
	store.mu.Unlock()
	return nil
}

// LikeMemory toggles the liked flag of a cached memory, writes the full
// record to the server, and refetches the collection on success. An id not
// present in the cache is a silent no-op: no network call is issued.
func (store *Store) LikeMemory(ctx context.Context, id int) error {
	store.mu.Lock()
	var toggled *models.Memory
	for _, memory := range store.memories {
		if memory.ID == id {
			flipped := memory
			flipped.Liked = !flipped.Liked
			toggled = &flipped
			break
		}
	}
	store.mu.Unlock()

	if toggled == nil {
		return nil
	}
	if err := store.backend.Put(ctx, fmt.Sprintf("/memories/%d", id), *toggled, nil); err != nil {
		log.Printf("store: like memory %d failed: %v", id, err)
		return err
	}
	return store.RefreshMemories(ctx)
}

func (store *Store) replaceCachedItinerary(trip models.Itinerary) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for index := range store.itineraries {
		if store.itineraries[index].ID == trip.ID {
			store.itineraries[index] = trip
		}
	}
}

func withoutMemory(memories []models.Memory, drop func(models.Memory) bool) []models.Memory {
	kept := make([]models.Memory, 0, len(memories))
	for _, memory := range memories {
		if !drop(memory) {
			kept = append(kept, memory)
		}
	}
	return kept
}
