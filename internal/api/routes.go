package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	app.Get("/login", handler.ShowLoginPage)
	app.Get("/register", handler.ShowRegisterPage)
	app.Get("/", handler.ShowRoot)
	app.Get("/dashboard", handler.LoginRequired, handler.ShowDashboard)
	app.Get("/calendar", handler.LoginRequired, handler.ShowCalendar)
	app.Get("/create", handler.LoginRequired, handler.ShowCreateItinerary)
	app.Get("/itinerary/:id", handler.LoginRequired, handler.ShowItineraryDetails)
	app.Get("/edit-itinerary/:id", handler.LoginRequired, handler.ShowEditItinerary)
	app.Get("/memories", handler.LoginRequired, handler.ShowMemories)
	app.Get("/profile", handler.LoginRequired, handler.ShowProfile)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.LoginRequired, handler.Logout)

	api.Put("/profile", handler.LoginRequired, handler.SaveProfile)

	itineraries := api.Group("/itineraries", handler.LoginRequired)
	itineraries.Post("", handler.CreateItinerary)
	itineraries.Put("/:id", handler.UpdateItinerary)
	itineraries.Delete("/:id", handler.DeleteItinerary)
	itineraries.Post("/:id/dayplans", handler.CreateDayPlan)
	itineraries.Put("/:id/dayplans/:planID", handler.UpdateDayPlan)
	itineraries.Delete("/:id/memories", handler.DeleteTripMemories)

	memories := api.Group("/memories", handler.LoginRequired)
	memories.Post("", handler.CreateMemory)
	memories.Put("/:id", handler.UpdateMemory)
	memories.Delete("/:id", handler.DeleteMemory)
	memories.Post("/:id/like", handler.LikeMemory)

	ui := api.Group("/ui", handler.LoginRequired)
	ui.Post("/search", handler.SetSearch)
	ui.Post("/sidebar", handler.SetSidebar)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
