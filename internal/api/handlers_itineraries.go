package api

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateItinerary(c *fiber.Ctx) error {
	trip, err := parseItineraryInput(c, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := handler.store.CreateItinerary(c.Context(), trip); err != nil {
		log.Printf("api: create itinerary failed: %v", err)
		return backendFailure(c, err, "failed to create itinerary")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "redirect": "/dashboard"})
}

func (handler *Handler) UpdateItinerary(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid itinerary id")
	}
	trip, err := parseItineraryInput(c, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	trip.ID = id

	if err := handler.store.UpdateItinerary(c.Context(), id, trip); err != nil {
		log.Printf("api: update itinerary %d failed: %v", id, err)
		return backendFailure(c, err, "failed to update itinerary")
	}
	return c.JSON(fiber.Map{"ok": true, "redirect": "/itinerary/" + c.Params("id")})
}

func (handler *Handler) DeleteItinerary(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid itinerary id")
	}

	if err := handler.store.DeleteItinerary(c.Context(), id); err != nil {
		return backendFailure(c, err, "failed to delete itinerary")
	}
	return c.JSON(fiber.Map{"ok": true, "redirect": "/dashboard"})
}

func (handler *Handler) CreateDayPlan(c *fiber.Ctx) error {
	tripID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid itinerary id")
	}
	plan, err := parseDayPlanInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := handler.store.SaveDayPlan(c.Context(), tripID, plan); err != nil {
		log.Printf("api: create day plan for itinerary %d failed: %v", tripID, err)
		return backendFailure(c, err, "failed to save plan")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (handler *Handler) UpdateDayPlan(c *fiber.Ctx) error {
	tripID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid itinerary id")
	}
	planID, err := strconv.Atoi(c.Params("planID"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid plan id")
	}
	plan, err := parseDayPlanInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	plan.ID = planID

	if err := handler.store.SaveDayPlan(c.Context(), tripID, plan); err != nil {
		log.Printf("api: update day plan %d of itinerary %d failed: %v", planID, tripID, err)
		return backendFailure(c, err, "failed to save plan")
	}
	return c.JSON(fiber.Map{"ok": true})
}
