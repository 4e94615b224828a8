package api

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateMemory(c *fiber.Ctx) error {
	memory, err := parseMemoryInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	created, err := handler.store.CreateMemory(c.Context(), memory)
	if err != nil {
		log.Printf("api: create memory failed: %v", err)
		return backendFailure(c, err, "failed to save memory")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) UpdateMemory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid memory id")
	}
	memory, err := parseMemoryInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := handler.store.UpdateMemory(c.Context(), id, memory); err != nil {
		log.Printf("api: update memory %d failed: %v", id, err)
		return backendFailure(c, err, "failed to save memory")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeleteMemory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid memory id")
	}

	if err := handler.store.DeleteMemory(c.Context(), id); err != nil {
		log.Printf("api: delete memory %d failed: %v", id, err)
		return backendFailure(c, err, "failed to delete memory")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// DeleteTripMemories removes every memory of one trip. All-or-nothing: if
// any per-memory delete fails the cache keeps the full group.
func (handler *Handler) DeleteTripMemories(c *fiber.Ctx) error {
	tripID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid itinerary id")
	}

	if err := handler.store.DeleteTripMemories(c.Context(), tripID); err != nil {
		return backendFailure(c, err, "failed to delete trip memories")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) LikeMemory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid memory id")
	}

	if err := handler.store.LikeMemory(c.Context(), id); err != nil {
		return backendFailure(c, err, "failed to update memory")
	}
	return c.JSON(fiber.Map{"ok": true})
}
