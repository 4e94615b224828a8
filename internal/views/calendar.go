// Package views holds the pure derived computations the page handlers render
// from: calendar grids, trip statistics, durations, and memory groupings.
// Every function is a deterministic projection of a cache snapshot plus its
// parameters; nothing here touches the network or mutates state.
package views

import (
	"sort"
	"time"

	"github.com/wanderhq/wander/internal/models"
)

// DayCell is one cell of a month grid. Padding cells fill the leading
// weekday offset before day 1 and render empty.
type DayCell struct {
	Day     int  `json:"day"`
	Padding bool `json:"padding"`
}

// MonthGrid lays out a month as a flat cell sequence: one padding cell per
// weekday before the 1st (Sunday = 0), then the days 1..daysInMonth.
func MonthGrid(year int, month time.Month, location *time.Location) []DayCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, location)
	// Day zero of the next month normalizes to the last day of this one.
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, location).Day()

	cells := make([]DayCell, 0, int(first.Weekday())+daysInMonth)
	for offset := 0; offset < int(first.Weekday()); offset++ {
		cells = append(cells, DayCell{Padding: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, DayCell{Day: day})
	}
	return cells
}

// IsTripDay reports whether the date falls inside some itinerary's inclusive
// [start, end] range. All comparisons happen at midnight in the given
// location; itineraries with unparseable dates never match.
func IsTripDay(itineraries []models.Itinerary, date time.Time, location *time.Location) bool {
	candidate := midnightOf(date, location)
	for _, trip := range itineraries {
		start, err := models.ParseTripDate(trip.StartDate, location)
		if err != nil {
			continue
		}
		end, err := models.ParseTripDate(trip.EndDate, location)
		if err != nil {
			continue
		}
		if !candidate.Before(start) && !candidate.After(end) {
			return true
		}
	}
	return false
}

// UpcomingInMonth returns the itineraries starting on or after the first day
// of the displayed month, ascending by start date.
func UpcomingInMonth(itineraries []models.Itinerary, monthStart time.Time, location *time.Location) []models.Itinerary {
	type dated struct {
		trip  models.Itinerary
		start time.Time
	}

	floor := midnightOf(monthStart, location)
	upcoming := make([]dated, 0, len(itineraries))
	for _, trip := range itineraries {
		start, err := models.ParseTripDate(trip.StartDate, location)
		if err != nil {
			continue
		}
		if start.Before(floor) {
			continue
		}
		upcoming = append(upcoming, dated{trip: trip, start: start})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].start.Before(upcoming[j].start)
	})

	trips := make([]models.Itinerary, 0, len(upcoming))
	for _, entry := range upcoming {
		trips = append(trips, entry.trip)
	}
	return trips
}

func midnightOf(moment time.Time, location *time.Location) time.Time {
	moment = moment.In(location)
	return time.Date(moment.Year(), moment.Month(), moment.Day(), 0, 0, 0, 0, location)
}
