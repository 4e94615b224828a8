package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token at the remote API, persists
// the token under the fixed session key, and flips the store to logged in,
// which kicks off the background fetches.
func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	var session loginResponse
	if err := handler.backend.Post(c.Context(), "/auth/login", credentials, &session); err != nil {
		log.Printf("api: login failed: %v", err)
		return backendFailure(c, err, "login failed")
	}
	if err := handler.credentials.SetToken(session.Token); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to persist session")
	}

	handler.store.SetLoggedIn(true)
	return c.JSON(fiber.Map{"ok": true, "redirect": "/dashboard"})
}

// Register creates the account remotely, then logs straight in with the
// same credentials.
func (handler *Handler) Register(c *fiber.Ctx) error {
	registration, err := parseRegistration(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := handler.backend.Post(c.Context(), "/auth/register", registration, nil); err != nil {
		log.Printf("api: register failed: %v", err)
		return backendFailure(c, err, "signup failed")
	}

	login := credentialsInput{Email: registration.Email, Password: registration.Password}
	var session loginResponse
	if err := handler.backend.Post(c.Context(), "/auth/login", login, &session); err != nil {
		log.Printf("api: post-register login failed: %v", err)
		return backendFailure(c, err, "signup succeeded but login failed")
	}
	if err := handler.credentials.SetToken(session.Token); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to persist session")
	}

	handler.store.SetLoggedIn(true)
	return c.JSON(fiber.Map{"ok": true, "redirect": "/dashboard"})
}

// Logout clears the persisted credential first, then flips the session
// flag. The cached collections stay in memory; the route guard keeps them
// unreachable.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	if err := handler.credentials.ClearToken(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear session")
	}
	handler.store.SetLoggedIn(false)
	return c.JSON(fiber.Map{"ok": true, "redirect": "/login"})
}
