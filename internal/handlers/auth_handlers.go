package handlers

import (
	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/fathima-sithara/account-service/internal/utils"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) RegisterEmail(c *fiber.Ctx) error {
	var req models.RegisterEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.auth.RegisterEmail(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, fiber.Map{
		"message": "Registration successful. Please verify your email with OTP.",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *Handler) VerifyEmail(c *fiber.Ctx) error {
	var req models.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.auth.VerifyEmailOTP(c.Context(), req.Email, req.OTP)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"message": "Email verified successfully",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *Handler) LoginEmail(c *fiber.Ctx) error {
	var req models.LoginEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.auth.LoginEmail(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *Handler) RegisterPhone(c *fiber.Ctx) error {
	var req models.RegisterPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.auth.RegisterPhone(c.Context(), req.Phone, req.Name)
	if err != nil {
		return h.fail(c, err)
	}
	body := fiber.Map{
		"message": "Registration successful. Please verify your phone with OTP sent via SMS.",
		"token":   res.Token,
		"user":    res.User,
	}
	if res.OTP != "" {
		body["otp"] = res.OTP
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, body)
}

func (h *Handler) VerifyPhone(c *fiber.Ctx) error {
	var req models.VerifyPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.auth.VerifyPhoneOTP(c.Context(), req.Phone, req.OTP)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"message": "Phone verified successfully",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *Handler) LoginPhone(c *fiber.Ctx) error {
	var req models.LoginPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	devOTP, err := h.auth.RequestLoginOTP(c.Context(), req.Phone)
	if err != nil {
		return h.fail(c, err)
	}
	body := fiber.Map{"message": "OTP sent to your phone number"}
	if devOTP != "" {
		body["otp"] = devOTP
	}
	return utils.JSONSuccess(c, fiber.StatusOK, body)
}

func (h *Handler) VerifyLogin(c *fiber.Ctx) error {
	var req models.VerifyPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.auth.VerifyLoginOTP(c.Context(), req.Phone, req.OTP)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"message": "Login successful",
		"token":   res.Token,
		"user":    res.User,
	})
}

func (h *Handler) ResendOTP(c *fiber.Ctx) error {
	var req models.ResendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if req.Email == "" && req.Phone == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "email or phone is required")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	devOTP, err := h.auth.ResendOTP(c.Context(), req.Email, req.Phone)
	if err != nil {
		return h.fail(c, err)
	}
	message := "OTP resent to your phone"
	if req.Email != "" {
		message = "OTP resent to your email"
	}
	body := fiber.Map{"message": message}
	if devOTP != "" {
		body["otp"] = devOTP
	}
	return utils.JSONSuccess(c, fiber.StatusOK, body)
}
