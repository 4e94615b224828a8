package views

import (
	"strings"
	"time"

	"github.com/wanderhq/wander/internal/models"
)

// TripStats summarizes the itinerary collection for the dashboard header.
type TripStats struct {
	TotalTrips    int `json:"totalTrips"`
	UpcomingTrips int `json:"upcomingTrips"`
	Countries     int `json:"countries"`
}

// ComputeStats derives the dashboard counters. Upcoming counts trips whose
// start lies strictly after the current instant, not month-relative.
func ComputeStats(itineraries []models.Itinerary, now time.Time, location *time.Location) TripStats {
	stats := TripStats{TotalTrips: len(itineraries)}
	for _, trip := range itineraries {
		start, err := models.ParseTripDate(trip.StartDate, location)
		if err == nil && start.After(now) {
			stats.UpcomingTrips++
		}
	}
	stats.Countries = len(UniqueCountries(itineraries))
	return stats
}

// UniqueCountries collects the distinct country parts of the destinations.
// Destinations without a comma contribute nothing.
func UniqueCountries(itineraries []models.Itinerary) map[string]struct{} {
	countries := make(map[string]struct{})
	for _, trip := range itineraries {
		if country := trip.Country(); country != "" {
			countries[country] = struct{}{}
		}
	}
	return countries
}

// FilterByDestination keeps the itineraries whose destination contains the
// query, case-insensitively. An empty query keeps everything.
func FilterByDestination(itineraries []models.Itinerary, query string) []models.Itinerary {
	query = strings.ToLower(query)
	matched := make([]models.Itinerary, 0, len(itineraries))
	for _, trip := range itineraries {
		if strings.Contains(strings.ToLower(trip.Destination), query) {
			matched = append(matched, trip)
		}
	}
	return matched
}

// TripDurationDays is the inclusive day count shown on dashboard cards:
// a trip from the 10th to the 12th lasts three days.
func TripDurationDays(trip models.Itinerary, location *time.Location) int {
	return daySpan(trip, location) + 1
}

// TripNights is the exclusive day count used by the details view: a trip
// from the 10th to the 12th spans two nights. TripDurationDays and
// TripNights deliberately coexist; the two views have always disagreed by
// one and unifying them would change rendered numbers.
func TripNights(trip models.Itinerary, location *time.Location) int {
	return daySpan(trip, location)
}

func daySpan(trip models.Itinerary, location *time.Location) int {
	start, err := models.ParseTripDate(trip.StartDate, location)
	if err != nil {
		return 0
	}
	end, err := models.ParseTripDate(trip.EndDate, location)
	if err != nil {
		return 0
	}
	// Round absorbs the odd hour a DST transition adds or removes.
	return int(end.Sub(start).Round(24*time.Hour) / (24 * time.Hour))
}
