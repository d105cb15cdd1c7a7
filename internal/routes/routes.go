package routes

import (
	"time"

	"github.com/fathima-sithara/account-service/internal/handlers"
	"github.com/gofiber/fiber/v2"
)

// Setup mounts the auth and profile route groups plus the health check and
// the 404 fallback. protect is the bearer-token gate applied to /profile.
func Setup(app *fiber.App, h *handlers.Handler, protect fiber.Handler, env string) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register/email", h.RegisterEmail)
	auth.Post("/verify/email", h.VerifyEmail)
	auth.Post("/register/phone", h.RegisterPhone)
	auth.Post("/verify/phone", h.VerifyPhone)
	auth.Post("/login/email", h.LoginEmail)
	auth.Post("/login/phone", h.LoginPhone)
	auth.Post("/login/verify", h.VerifyLogin)
	auth.Post("/resend-otp", h.ResendOTP)

	profile := api.Group("/profile", protect)
	profile.Get("/", h.GetProfile)
	profile.Put("/", h.UpdateProfile)
	profile.Post("/upload-picture", h.UploadProfilePicture)
	profile.Delete("/picture", h.DeleteProfilePicture)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":     true,
			"message":     "Server is running",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": env,
		})
	})

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Route not found",
			"path":    c.Path(),
		})
	})
}
