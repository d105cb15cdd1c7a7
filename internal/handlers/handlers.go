package handlers

import (
	"errors"

	"github.com/fathima-sithara/account-service/internal/services"
	"github.com/fathima-sithara/account-service/internal/utils"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler adapts the auth and profile services to Fiber routes.
type Handler struct {
	auth    services.AuthService
	profile services.ProfileService
	devMode bool
	logger  *zap.SugaredLogger
}

func NewHandler(auth services.AuthService, profile services.ProfileService, devMode bool, logger *zap.SugaredLogger) *Handler {
	return &Handler{auth: auth, profile: profile, devMode: devMode, logger: logger}
}

// fail maps service sentinels onto HTTP statuses; anything unexpected is a
// 500 whose detail is redacted outside development.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserExists):
		return utils.JSONError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		return utils.JSONError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidOrExpiredOTP),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidName):
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidLoginMethod):
		return utils.JSONError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return utils.JSONError(c, fiber.StatusForbidden, err.Error())
	}

	h.logger.Errorw("unexpected error", "path", c.Path(), "error", err)
	if h.devMode {
		return utils.JSONError(c, fiber.StatusInternalServerError, err.Error())
	}
	return utils.JSONError(c, fiber.StatusInternalServerError, "internal server error")
}
