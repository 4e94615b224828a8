// Package models holds the domain records mirrored from the remote travel
// API. The remote server owns every record; this process only caches them.
package models

import (
	"strings"
	"time"
)

// Itinerary is the top-level trip aggregate. IDs are assigned by the remote
// server and immutable; DayPlans are nested, not stored separately.
type Itinerary struct {
	ID          int       `json:"id,omitempty"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Image       string    `json:"image"`
	Activities  int       `json:"activities"`
	Description string    `json:"description"`
	Budget      string    `json:"budget"`
	DayPlans    []DayPlan `json:"dayPlans"`
}

// DayPlan is one day of an itinerary, owned by exactly one parent.
type DayPlan struct {
	ID         int      `json:"id,omitempty"`
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
}

// Country returns the part of the destination after the first comma,
// trimmed, e.g. "France" for "Paris, France". Empty when there is no comma.
func (itinerary Itinerary) Country() string {
	_, country, found := strings.Cut(itinerary.Destination, ",")
	if !found {
		return ""
	}
	return strings.TrimSpace(country)
}

// ParseTripDate parses a date-only value such as "2026-03-10". Timestamps
// with a time-of-day suffix are truncated to their date part first, since
// the remote server sometimes returns full RFC 3339 instants.
func ParseTripDate(value string, location *time.Location) (time.Time, error) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(value), "T")
	return time.ParseInLocation("2006-01-02", datePart, location)
}
