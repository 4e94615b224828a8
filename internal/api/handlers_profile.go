package api

import (
	"log"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wanderhq/wander/internal/models"
)

// SaveProfile writes the edited profile through the store. The store keeps
// the edited value locally on success instead of refetching.
func (handler *Handler) SaveProfile(c *fiber.Ctx) error {
	profile := models.UserProfile{}
	if err := c.BodyParser(&profile); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	if profile.Name == "" {
		return apiError(c, fiber.StatusBadRequest, "missing name")
	}
	if _, err := mail.ParseAddress(profile.Email); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid email")
	}

	if err := handler.store.SaveProfile(c.Context(), profile); err != nil {
		log.Printf("api: save profile failed: %v", err)
		return backendFailure(c, err, "failed to update profile")
	}
	return c.JSON(fiber.Map{"ok": true, "profile": profile})
}
