package api

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wanderhq/wander/internal/views"
)

// ShowRoot lands a visitor on the dashboard when logged in, the login view
// otherwise.
func (handler *Handler) ShowRoot(c *fiber.Ctx) error {
	if handler.store.LoggedIn() {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"view": "login", "loggedIn": handler.store.LoggedIn()})
}

func (handler *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"view": "register", "loggedIn": handler.store.LoggedIn()})
}

// ShowDashboard projects the itinerary cache into the stats header and the
// search-filtered trip card grid.
func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	itineraries := handler.store.Itineraries()
	query := handler.store.SearchQuery()

	now := time.Now().In(handler.location)
	cards := make([]fiber.Map, 0, len(itineraries))
	for _, trip := range views.FilterByDestination(itineraries, query) {
		cards = append(cards, fiber.Map{
			"id":           trip.ID,
			"destination":  trip.Destination,
			"startDate":    trip.StartDate,
			"endDate":      trip.EndDate,
			"image":        trip.Image,
			"durationDays": views.TripDurationDays(trip, handler.location),
			"planCount":    len(trip.DayPlans),
		})
	}

	return c.JSON(fiber.Map{
		"view":        "dashboard",
		"stats":       views.ComputeStats(itineraries, now, handler.location),
		"trips":       cards,
		"searchQuery": query,
		"sidebarOpen": handler.store.SidebarOpen(),
	})
}

// ShowCalendar renders the month grid with trip-day markers plus the
// upcoming trips at or after the displayed month.
func (handler *Handler) ShowCalendar(c *fiber.Ctx) error {
	now := time.Now().In(handler.location)
	year := c.QueryInt("year", now.Year())
	month := time.Month(c.QueryInt("month", int(now.Month())))
	if month < time.January || month > time.December {
		return apiError(c, fiber.StatusBadRequest, "month out of range")
	}

	itineraries := handler.store.Itineraries()
	cells := make([]fiber.Map, 0, 42)
	for _, cell := range views.MonthGrid(year, month, handler.location) {
		if cell.Padding {
			cells = append(cells, fiber.Map{"padding": true})
			continue
		}
		date := time.Date(year, month, cell.Day, 0, 0, 0, 0, handler.location)
		cells = append(cells, fiber.Map{
			"day":     cell.Day,
			"tripDay": views.IsTripDay(itineraries, date, handler.location),
		})
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, handler.location)
	upcoming := make([]fiber.Map, 0)
	for _, trip := range views.UpcomingInMonth(itineraries, monthStart, handler.location) {
		upcoming = append(upcoming, fiber.Map{
			"id":          trip.ID,
			"destination": trip.Destination,
			"startDate":   trip.StartDate,
			"endDate":     trip.EndDate,
		})
	}

	return c.JSON(fiber.Map{
		"view":     "calendar",
		"year":     year,
		"month":    int(month),
		"cells":    cells,
		"upcoming": upcoming,
	})
}

// ShowCreateItinerary serves the blank trip form descriptor.
func (handler *Handler) ShowCreateItinerary(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"view": "create-itinerary", "defaultImage": defaultItineraryImage})
}

// ShowEditItinerary prefills the trip form from a fresh single-record
// fetch; an unknown id sends the visitor back to the dashboard.
func (handler *Handler) ShowEditItinerary(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	trip, err := handler.store.FetchItinerary(c.Context(), id)
	if err != nil {
		log.Printf("api: fetch itinerary %d for edit failed: %v", id, err)
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	return c.JSON(fiber.Map{"view": "edit-itinerary", "trip": trip})
}

// ShowItineraryDetails refetches the single record from the remote server;
// the collection cache may lag behind nested day-plan edits. A missing id
// sends the visitor back to the dashboard.
func (handler *Handler) ShowItineraryDetails(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	trip, err := handler.store.FetchItinerary(c.Context(), id)
	if err != nil {
		log.Printf("api: fetch itinerary %d failed: %v", id, err)
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	return c.JSON(fiber.Map{
		"view":   "itinerary",
		"trip":   trip,
		"nights": views.TripNights(trip, handler.location),
	})
}

// ShowMemories groups the memory cache by owning trip, photos and journals
// apart.
func (handler *Handler) ShowMemories(c *fiber.Ctx) error {
	groups := views.GroupByTrip(handler.store.Itineraries(), handler.store.Memories())
	return c.JSON(fiber.Map{"view": "memories", "trips": groups})
}

func (handler *Handler) ShowProfile(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"view": "profile", "profile": handler.store.Profile()})
}
