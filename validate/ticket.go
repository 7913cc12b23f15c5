package validate

import (
	"event_ticketing/model"

	"github.com/gofiber/fiber/v2"
)

func CreateTicket() fiber.Handler {
	return body[model.CreateTicketInput]()
}

func EditTicket() fiber.Handler {
	return body[model.EditTicketInput]()
}

func InitializePayment() fiber.Handler {
	return body[model.InitializePaymentInput]()
}
