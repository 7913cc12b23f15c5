package handler

import (
	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.RegisterInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	account, err := h.accounts.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	setAccessCookie(c, account.Token)
	return utils.SuccessResponse(c, fiber.StatusCreated, account)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.LoginInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	account, err := h.accounts.Login(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	setAccessCookie(c, account.Token)
	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	account, err := h.accounts.Me(c.UserContext(), principal(c).AccountID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, account)
}

func setAccessCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}
