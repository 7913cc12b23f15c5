package validate

import (
	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent() fiber.Handler {
	return body[model.CreateEventInput]()
}

func EditEvent() fiber.Handler {
	return body[model.EditEventInput]()
}

func FilterEvents() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter model.FilterEventInput

		if err := c.QueryParser(&filter); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(filter); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		c.Locals("filter", filter)
		return c.Next()
	}
}

func CheckIn() fiber.Handler {
	return body[model.CheckInInput]()
}
