package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/wanderhq/wander/internal/models"
)

func TestSaveProfileOverwritesCacheWithoutRefetch(t *testing.T) {
	backend := &scriptedBackend{}
	appStore := newTestStore(backend)
	edited := models.UserProfile{Name: "Jane Roe", Email: "jane@example.com", Location: "Lisbon, Portugal"}

	if err := appStore.SaveProfile(context.Background(), edited); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	if appStore.Profile() != edited {
		t.Fatalf("expected the edited profile in the cache, got %+v", appStore.Profile())
	}
	if !reflect.DeepEqual(backend.recorded(), []string{"PUT /profile"}) {
		t.Fatalf("expected a single PUT with no refetch, got %v", backend.recorded())
	}
}

func TestSaveProfileFailureLeavesCache(t *testing.T) {
	backend := &scriptedBackend{
		putFunc: func(path string, body any, out any) error {
			return errors.New("rejected")
		},
	}
	appStore := newTestStore(backend)
	before := appStore.Profile()

	if err := appStore.SaveProfile(context.Background(), models.UserProfile{Name: "Jane Roe"}); err == nil {
		t.Fatal("expected the save error to surface")
	}
	if appStore.Profile() != before {
		t.Fatal("expected a failed save to leave the cached profile alone")
	}
}

func TestCreateItineraryRefetchesCollection(t *testing.T) {
	backend := &scriptedBackend{
		getFunc: func(path string, out any) error {
			*out.(*[]models.Itinerary) = []models.Itinerary{{ID: 1, Destination: "Paris, France"}}
			return nil
		},
	}
	appStore := newTestStore(backend)

	if err := appStore.CreateItinerary(context.Background(), models.Itinerary{Destination: "Paris, France"}); err != nil {
		t.Fatalf("create itinerary: %v", err)
	}

	if !reflect.DeepEqual(backend.recorded(), []string{"POST /itineraries", "GET /itineraries"}) {
		t.Fatalf("expected create then refetch, got %v", backend.recorded())
	}
	if trips := appStore.Itineraries(); len(trips) != 1 || trips[0].ID != 1 {
		t.Fatalf("expected the refetched list in the cache, got %+v", trips)
	}
}

func TestDeleteItineraryRefetchesServerList(t *testing.T) {
	serverList := []models.Itinerary{
		{ID: 1, Destination: "Paris, France"},
		{ID: 2, Destination: "Tokyo, Japan"},
	}
	backend := &scriptedBackend{}
	backend.deleteFunc = func(path string) error {
		serverList = []models.Itinerary{{ID: 1, Destination: "Paris, France"}}
		return nil
	}
	backend.getFunc = func(path string, out any) error {
		list := make([]models.Itinerary, len(serverList))
		copy(list, serverList)
		*out.(*[]models.Itinerary) = list
		return nil
	}
	appStore := newTestStore(backend)
	appStore.itineraries = append([]models.Itinerary{}, serverList...)

	if err := appStore.DeleteItinerary(context.Background(), 2); err != nil {
		t.Fatalf("delete itinerary: %v", err)
	}

	if !reflect.DeepEqual(backend.recorded(), []string{"DELETE /itineraries/2", "GET /itineraries"}) {
		t.Fatalf("expected delete then refetch, got %v", backend.recorded())
	}
	trips := appStore.Itineraries()
	if len(trips) != 1 || trips[0].ID != 1 {
		t.Fatalf("expected the cache to mirror the server list, got %+v", trips)
	}
}

func TestDeleteItineraryFailureSkipsRefetch(t *testing.T) {
	backend := &scriptedBackend{
		deleteFunc: func(path string) error {
			return errors.New("conflict")
		},
	}
	appStore := newTestStore(backend)
	appStore.itineraries = []models.Itinerary{{ID: 2, Destination: "Tokyo, Japan"}}

	if err := appStore.DeleteItinerary(context.Background(), 2); err == nil {
		t.Fatal("expected the delete error to surface")
	}
	if !reflect.DeepEqual(backend.recorded(), []string{"DELETE /itineraries/2"}) {
		t.Fatalf("expected no refetch after a failed delete, got %v", backend.recorded())
	}
	if len(appStore.Itineraries()) != 1 {
		t.Fatal("expected the cache to keep the record the server still has")
	}
}

func TestUpdateItineraryRefetchesSingleRecord(t *testing.T) {
	backend := &scriptedBackend{
		getFunc: func(path string, out any) error {
			if path != "/itineraries/4" {
				return fmt.Errorf("unexpected path %s", path)
			}
			*out.(*models.Itinerary) = models.Itinerary{ID: 4, Destination: "Rome, Italy", Activities: 6}
			return nil
		},
	}
	appStore := newTestStore(backend)
	appStore.itineraries = []models.Itinerary{{ID: 4, Destination: "Rome, Italy", Activities: 2}}

	edited := models.Itinerary{ID: 4, Destination: "Rome, Italy"}
	if err := appStore.UpdateItinerary(context.Background(), 4, edited); err != nil {
		t.Fatalf("update itinerary: %v", err)
	}

	if !reflect.DeepEqual(backend.recorded(), []string{"PUT /itineraries/4", "GET /itineraries/4"}) {
		t.Fatalf("expected put then single-record fetch, got %v", backend.recorded())
	}
	if trips := appStore.Itineraries(); trips[0].Activities != 6 {
		t.Fatalf("expected the server response in the cache, got %+v", trips[0])
	}
}

func TestSaveDayPlanRoutesByID(t *testing.T) {
	backend := &scriptedBackend{
		getFunc: func(path string, out any) error {
			*out.(*models.Itinerary) = models.Itinerary{ID: 3}
			return nil
		},
	}
	appStore := newTestStore(backend)

	if err := appStore.SaveDayPlan(context.Background(), 3, models.DayPlan{Day: 1, Title: "Arrival"}); err != nil {
		t.Fatalf("create day plan: %v", err)
	}
	if err := appStore.SaveDayPlan(context.Background(), 3, models.DayPlan{ID: 8, Day: 1, Title: "Arrival"}); err != nil {
		t.Fatalf("update day plan: %v", err)
	}

	want := []string{
		"POST /itineraries/3/dayplans",
		"GET /itineraries/3",
		"PUT /itineraries/3/dayplans/8",
		"GET /itineraries/3",
	}
	if !reflect.DeepEqual(backend.recorded(), want) {
		t.Fatalf("expected %v, got %v", want, backend.recorded())
	}
}

func TestCreateMemoryPrependsServerRecord(t *testing.T) {
	backend := &scriptedBackend{
		postFunc: func(path string, body any, out any) error {
			draft := body.(models.Memory)
			draft.ID = 42
			*out.(*models.Memory) = draft
			return nil
		},
	}
	appStore := newTestStore(backend)
	appStore.memories = []models.Memory{{ID: 1, TripID: 1, Photo: &models.PhotoDetails{}}}

	created, err := appStore.CreateMemory(context.Background(), models.Memory{
		TripID: 1,
		Photo:  &models.PhotoDetails{ImageURL: "https://example.com/new.jpg"},
	})
	if err != nil {
		t.Fatalf("create memory: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("expected the server-assigned id, got %d", created.ID)
	}

	memories := appStore.Memories()
	if len(memories) != 2 || memories[0].ID != 42 {
		t.Fatalf("expected the new record prepended, got %+v", memories)
	}
	if !reflect.DeepEqual(backend.recorded(), []string{"POST /memories"}) {
		t.Fatalf("expected no refetch after create, got %v", backend.recorded())
	}
}

func TestUpdateMemoryMergesInPlace(t *testing.T) {
	backend := &scriptedBackend{}
	appStore := newTestStore(backend)
	appStore.memories = []models.Memory{
		{ID: 1, TripID: 1, Photo: &models.PhotoDetails{Caption: "old"}},
		{ID: 2, TripID: 1, Journal: &models.JournalDetails{Note: "keep"}},
	}

	edited := models.Memory{TripID: 1, Photo: &models.PhotoDetails{Caption: "new"}}
	if err := appStore.UpdateMemory(context.Background(), 1, edited); err != nil {
		t.Fatalf("update memory: %v", err)
	}

	memories := appStore.Memories()
	if memories[0].ID != 1 || memories[0].Photo.Caption != "new" {
		t.Fatalf("expected the edited record at its slot, got %+v", memories[0])
	}
	if memories[1].Journal.Note != "keep" {
		t.Fatal("expected the other record untouched")
	}
}

func TestDeleteMemoryFiltersLocally(t *testing.T) {
	backend := &scriptedBackend{}
	appStore := newTestStore(backend)
	appStore.memories = []models.Memory{
		{ID: 1, TripID: 1, Photo: &models.PhotoDetails{}},
		{ID: 2, TripID: 1, Photo: &models.PhotoDetails{}},
	}

	if err := appStore.DeleteMemory(context.Background(), 1); err != nil {
		t.Fatalf("delete memory: %v", err)
	}

	memories := appStore.Memories()
	if len(memories) != 1 || memories[0].ID != 2 {
		t.Fatalf("expected only memory 2 to remain, got %+v", memories)
	}
	if !reflect.DeepEqual(backend.recorded(), []string{"DELETE /memories/1"}) {
		t.Fatalf("expected no refetch after delete, got %v", backend.recorded())
	}
}

func TestDeleteTripMemoriesAllOrNothing(t *testing.T) {
	backend := &scriptedBackend{
		deleteFunc: func(path string) error {
			if strings.HasSuffix(path, "/2") {
				return errors.New("locked")
			}
			return nil
		},
	}
	appStore := newTestStore(backend)
	appStore.memories = []models.Memory{
		{ID: 1, TripID: 7, Photo: &models.PhotoDetails{}},
		{ID: 2, TripID: 7, Journal: &models.JournalDetails{}},
		{ID: 3, TripID: 8, Photo: &models.PhotoDetails{}},
	}

	if err := appStore.DeleteTripMemories(context.Background(), 7); err == nil {
		t.Fatal("expected one rejection to fail the whole operation")
	}
	if memories := appStore.Memories(); len(memories) != 3 {
		t.Fatalf("expected the cache untouched after a partial failure, got %+v", memories)
	}
}

func TestDeleteTripMemoriesRemovesOnlyThatTrip(t *testing.T) {
	backend := &scriptedBackend{}
	appStore := newTestStore(backend)
	appStore.memories = []models.Memory{
		{ID: 1, TripID: 7, Photo: &models.PhotoDetails{}},
		{ID: 2, TripID: 7, Journal: &models.JournalDetails{}},
		{ID: 3, TripID: 8, Photo: &models.PhotoDetails{}},
	}

	if err := appStore.DeleteTripMemories(context.Background(), 7); err != nil {
		t.Fatalf("delete trip memories: %v", err)
	}

	memories := appStore.Memories()
	if len(memories) != 1 || memories[0].TripID != 8 {
		t.Fatalf("expected only the other trip's memory to remain, got %+v", memories)
	}
	calls := backend.recorded()
	if len(calls) != 2 {
		t.Fatalf("expected one delete per memory, got %v", calls)
	}
}

func TestLikeMemoryUnknownIDIsSilentNoOp(t *testing.T) {
	backend := &scriptedBackend{}
	appStore := newTestStore(backend)
	appStore.memories = []models.Memory{{ID: 1, TripID: 1, Photo: &models.PhotoDetails{}}}

	if err := appStore.LikeMemory(context.Background(), 99); err != nil {
		t.Fatalf("like of unknown id should succeed silently, got %v", err)
	}
	if calls := backend.recorded(); len(calls) != 0 {
		t.Fatalf("expected no network traffic for an unknown id, got %v", calls)
	}
}

func TestLikeMemoryTogglesAndRefetches(t *testing.T) {
	var sentLiked bool
	backend := &scriptedBackend{
		putFunc: func(path string, body any, out any) error {
			sentLiked = body.(models.Memory).Liked
			return nil
		},
		getFunc: func(path string, out any) error {
			*out.(*[]models.Memory) = []models.Memory{
				{ID: 1, TripID: 1, Liked: true, Photo: &models.PhotoDetails{}},
			}
			return nil
		},
	}
	appStore := newTestStore(backend)
	appStore.memories = []models.Memory{{ID: 1, TripID: 1, Liked: false, Photo: &models.PhotoDetails{}}}

	if err := appStore.LikeMemory(context.Background(), 1); err != nil {
		t.Fatalf("like memory: %v", err)
	}

	if !sentLiked {
		t.Fatal("expected the full record with the flag flipped on the wire")
	}
	if !reflect.DeepEqual(backend.recorded(), []string{"PUT /memories/1", "GET /memories"}) {
		t.Fatalf("expected put then refetch, got %v", backend.recorded())
	}
	if memories := appStore.Memories(); !memories[0].Liked {
		t.Fatalf("expected the refetched liked state, got %+v", memories[0])
	}
}
