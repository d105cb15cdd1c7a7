package utils

import "github.com/gofiber/fiber/v2"

// Response helpers producing the {success, message?, error?, ...} envelope
// used by every endpoint.

func JSONSuccess(c *fiber.Ctx, status int, body fiber.Map) error {
	out := fiber.Map{"success": true}
	for k, v := range body {
		out[k] = v
	}
	return c.Status(status).JSON(out)
}

func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}
