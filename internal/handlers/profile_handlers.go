package handlers

import (
	"errors"
	"io"

	"github.com/fathima-sithara/account-service/internal/middlewares"
	"github.com/fathima-sithara/account-service/internal/models"
	"github.com/fathima-sithara/account-service/internal/utils"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetProfile(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return utils.JSONError(c, fiber.StatusUnauthorized, "not authorized")
	}

	profile, err := h.profile.Get(c.Context(), user.ID.Hex())
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"data": profile})
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return utils.JSONError(c, fiber.StatusUnauthorized, "not authorized")
	}

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := h.profile.Update(c.Context(), user.ID.Hex(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"message": "Profile updated successfully",
		"data":    profile,
	})
}

func (h *Handler) UploadProfilePicture(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return utils.JSONError(c, fiber.StatusUnauthorized, "not authorized")
	}

	fileHeader, err := c.FormFile("profilePicture")
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "please upload an image file")
	}
	if err := utils.ValidateImageUpload(fileHeader); err != nil {
		if errors.Is(err, utils.ErrFileTooLarge) {
			return utils.JSONError(c, fiber.StatusBadRequest, "File size too large. Maximum size is 5MB.")
		}
		return utils.JSONError(c, fiber.StatusBadRequest, "Only image files (jpeg, jpg, png, gif, webp) are allowed.")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "cannot open file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "cannot read file")
	}

	profile, err := h.profile.UploadPicture(c.Context(), user.ID.Hex(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"message": "Profile picture uploaded successfully",
		"data": fiber.Map{
			"profilePicture": profile.ProfilePicture,
			"user":           profile,
		},
	})
}

func (h *Handler) DeleteProfilePicture(c *fiber.Ctx) error {
	user := middlewares.CurrentUser(c)
	if user == nil {
		return utils.JSONError(c, fiber.StatusUnauthorized, "not authorized")
	}

	profile, err := h.profile.DeletePicture(c.Context(), user.ID.Hex())
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"message": "Profile picture removed successfully",
		"data":    profile,
	})
}
