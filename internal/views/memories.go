package views

import "github.com/wanderhq/wander/internal/models"

// TripMemories pairs an itinerary with its memories, already split by
// variant so the photo grid and journal list render independently.
type TripMemories struct {
	Trip     models.Itinerary `json:"trip"`
	Photos   []models.Memory  `json:"photos"`
	Journals []models.Memory  `json:"journals"`
}

// GroupByTrip partitions the memory list by owning trip, preserving the
// memory list order inside each group. Memories referencing unknown trip IDs
// are dropped, matching how the browser client rendered only known trips.
func GroupByTrip(itineraries []models.Itinerary, memories []models.Memory) []TripMemories {
	groups := make([]TripMemories, 0, len(itineraries))
	for _, trip := range itineraries {
		group := TripMemories{
			Trip:     trip,
			Photos:   []models.Memory{},
			Journals: []models.Memory{},
		}
		for _, memory := range memories {
			if memory.TripID != trip.ID {
				continue
			}
			switch memory.Kind() {
			case models.MemoryKindJournal:
				group.Journals = append(group.Journals, memory)
			default:
				group.Photos = append(group.Photos, memory)
			}
		}
		groups = append(groups, group)
	}
	return groups
}
