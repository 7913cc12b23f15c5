package handler

import (
	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	event, err := h.events.CreateEvent(c.UserContext(), principal(c), input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, event)
}

func (h *Handler) GetEvents(c *fiber.Ctx) error {
	filter, ok := c.Locals("filter").(model.FilterEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	result, err := h.events.ListEvents(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, result)
}

func (h *Handler) GetEventById(c *fiber.Ctx) error {
	event, err := h.events.GetEvent(c.UserContext(), c.Params("eventId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) EditEvent(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.EditEventInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	event, err := h.events.UpdateEvent(c.UserContext(), principal(c), c.Params("eventId"), input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) DeleteEvent(c *fiber.Ctx) error {
	if err := h.events.DeleteEvent(c.UserContext(), principal(c), c.Params("eventId")); err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": c.Params("eventId")})
}

func (h *Handler) UploadEventImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	defer file.Close()

	event, err := h.events.UploadImage(c.UserContext(), principal(c), c.Params("eventId"), file)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, event)
}

func (h *Handler) GetEventTickets(c *fiber.Ctx) error {
	tickets, err := h.ledger.GetAllTickets(c.UserContext(), c.Params("eventId"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, tickets)
}

func (h *Handler) GetEventAttendees(c *fiber.Ctx) error {
	ctx := c.UserContext()
	event, err := h.events.Authorize(ctx, principal(c), c.Params("eventId"))
	if err != nil {
		return respondError(c, err)
	}

	attendees, err := h.checkIn.ListAttendees(ctx, event.ID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, attendees)
}

func (h *Handler) CheckIn(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CheckInInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	ctx := c.UserContext()
	event, err := h.events.Authorize(ctx, principal(c), c.Params("eventId"))
	if err != nil {
		return respondError(c, err)
	}

	attendee, err := h.checkIn.CheckIn(ctx, event.ID, input.CheckInCode)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, attendee)
}
