package api

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wanderhq/wander/internal/models"
)

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registrationInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, errors.New("invalid request body")
	}

	credentials.Email = strings.ToLower(strings.TrimSpace(credentials.Email))
	credentials.Password = strings.TrimSpace(credentials.Password)

	if credentials.Email == "" || credentials.Password == "" {
		return credentialsInput{}, errors.New("missing credentials")
	}
	if _, err := mail.ParseAddress(credentials.Email); err != nil {
		return credentialsInput{}, errors.New("invalid email")
	}
	return credentials, nil
}

func parseRegistration(c *fiber.Ctx) (registrationInput, error) {
	registration := registrationInput{}
	if err := c.BodyParser(&registration); err != nil {
		return registrationInput{}, errors.New("invalid request body")
	}

	registration.FullName = strings.TrimSpace(registration.FullName)
	registration.Email = strings.ToLower(strings.TrimSpace(registration.Email))
	registration.Password = strings.TrimSpace(registration.Password)

	if registration.FullName == "" {
		return registrationInput{}, errors.New("missing full name")
	}
	if registration.Email == "" || registration.Password == "" {
		return registrationInput{}, errors.New("missing credentials")
	}
	if _, err := mail.ParseAddress(registration.Email); err != nil {
		return registrationInput{}, errors.New("invalid email")
	}
	return registration, nil
}

var nonBudgetCharacters = regexp.MustCompile(`[^0-9.]`)

// parseItineraryInput validates an itinerary form before any network call
// is made: destination and a coherent date range are local preconditions.
func parseItineraryInput(c *fiber.Ctx, location *time.Location) (models.Itinerary, error) {
	trip := models.Itinerary{}
	if err := c.BodyParser(&trip); err != nil {
		return models.Itinerary{}, errors.New("invalid request body")
	}

	trip.Destination = strings.TrimSpace(trip.Destination)
	if trip.Destination == "" {
		return models.Itinerary{}, errors.New("missing destination")
	}

	start, err := models.ParseTripDate(trip.StartDate, location)
	if err != nil {
		return models.Itinerary{}, errors.New("invalid start date")
	}
	end, err := models.ParseTripDate(trip.EndDate, location)
	if err != nil {
		return models.Itinerary{}, errors.New("invalid end date")
	}
	if end.Before(start) {
		return models.Itinerary{}, errors.New("end date before start date")
	}

	trip.Budget = nonBudgetCharacters.ReplaceAllString(trip.Budget, "")
	if trip.Image == "" {
		trip.Image = defaultItineraryImage
	}
	if trip.DayPlans == nil {
		trip.DayPlans = []models.DayPlan{}
	}
	return trip, nil
}

type dayPlanInput struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
}

func parseDayPlanInput(c *fiber.Ctx) (models.DayPlan, error) {
	input := dayPlanInput{}
	if err := c.BodyParser(&input); err != nil {
		return models.DayPlan{}, errors.New("invalid request body")
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return models.DayPlan{}, errors.New("missing title")
	}
	if input.Day < 1 {
		return models.DayPlan{}, errors.New("day must be 1 or greater")
	}

	activities := make([]string, 0, len(input.Activities))
	for _, activity := range input.Activities {
		if trimmed := strings.TrimSpace(activity); trimmed != "" {
			activities = append(activities, trimmed)
		}
	}
	return models.DayPlan{Day: input.Day, Title: input.Title, Activities: activities}, nil
}

// parseMemoryInput enforces the variant split: a trip must be selected, and
// each variant requires its own field set.
func parseMemoryInput(c *fiber.Ctx) (models.Memory, error) {
	memory := models.Memory{}
	if err := c.BodyParser(&memory); err != nil {
		return models.Memory{}, errors.New("invalid memory payload")
	}
	if memory.TripID == 0 {
		return models.Memory{}, errors.New("select a trip")
	}

	// A non-JSON body can land here with both variant pointers nil.
	switch {
	case memory.Photo != nil:
		if strings.TrimSpace(memory.Photo.ImageURL) == "" {
			return models.Memory{}, errors.New("missing image url")
		}
	case memory.Journal != nil:
		if memory.Journal.DayNumber < 1 {
			return models.Memory{}, errors.New("day number must be 1 or greater")
		}
	default:
		return models.Memory{}, errors.New("invalid memory payload")
	}
	return memory, nil
}

const defaultItineraryImage = "https://images.unsplash.com/photo-1488646953014-85cb44e25828?w=800"
