package handler

import (
	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateTicket(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateTicketInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	ctx := c.UserContext()
	if _, err := h.events.Authorize(ctx, principal(c), input.EventId); err != nil {
		return respondError(c, err)
	}

	ticket, err := h.ledger.CreateTicket(ctx, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, ticket)
}

func (h *Handler) GetTicketById(c *fiber.Ctx) error {
	ticket, err := h.ledger.GetTicketById(c.UserContext(), c.Params("ticketId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ticket)
}

func (h *Handler) EditTicket(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.EditTicketInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	ctx := c.UserContext()
	ticket, err := h.ledger.GetTicketById(ctx, c.Params("ticketId"))
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.events.Authorize(ctx, principal(c), ticket.EventId); err != nil {
		return respondError(c, err)
	}

	updated, err := h.ledger.UpdateTicket(ctx, ticket.ID, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}

func (h *Handler) DeleteTicket(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ticket, err := h.ledger.GetTicketById(ctx, c.Params("ticketId"))
	if err != nil {
		return respondError(c, err)
	}
	if _, err := h.events.Authorize(ctx, principal(c), ticket.EventId); err != nil {
		return respondError(c, err)
	}

	if err := h.ledger.DeleteTicket(ctx, ticket.ID); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": ticket.ID})
}
