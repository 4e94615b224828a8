package api

import "github.com/gofiber/fiber/v2"

type searchInput struct {
	Query string `json:"query"`
}

type sidebarInput struct {
	Open bool `json:"open"`
}

// SetSearch stores the destination filter used by the dashboard grid.
func (handler *Handler) SetSearch(c *fiber.Ctx) error {
	input := searchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	handler.store.SetSearchQuery(input.Query)
	return c.JSON(fiber.Map{"ok": true})
}

// SetSidebar stores the mobile sidebar visibility flag.
func (handler *Handler) SetSidebar(c *fiber.Ctx) error {
	input := sidebarInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	handler.store.SetSidebarOpen(input.Open)
	return c.JSON(fiber.Map{"ok": true})
}
