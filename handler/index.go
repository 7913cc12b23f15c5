package handler

import (
	"errors"
	"event_ticketing/constants"
	"event_ticketing/helper"
	"event_ticketing/service"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Handler struct {
	accounts      *service.AccountService
	events        *service.EventService
	ledger        *service.Ledger
	payments      *service.PaymentService
	checkIn       *service.CheckInService
	feed          *helper.LiveFeed
	webhookSecret string
}

func NewHandler(
	accounts *service.AccountService,
	events *service.EventService,
	ledger *service.Ledger,
	payments *service.PaymentService,
	checkIn *service.CheckInService,
	feed *helper.LiveFeed,
	webhookSecret string,
) *Handler {
	return &Handler{
		accounts:      accounts,
		events:        events,
		ledger:        ledger,
		payments:      payments,
		checkIn:       checkIn,
		feed:          feed,
		webhookSecret: webhookSecret,
	}
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return fiber.StatusNotFound
	case service.KindConflict:
		return fiber.StatusConflict
	case service.KindBadRequest:
		return fiber.StatusBadRequest
	case service.KindUnauthorized:
		return fiber.StatusUnauthorized
	case service.KindForbidden:
		return fiber.StatusForbidden
	case service.KindUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err in the standard error envelope. Internal causes are
// logged and never sent to the client.
func respondError(c *fiber.Ctx, err error) error {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
	}

	status := statusFor(svcErr.Kind)
	if svcErr.Data != nil {
		return utils.ErrorResponseWithData(c, status, svcErr.Message, svcErr.Data)
	}
	if status >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), svcErr)
		return utils.ErrorResponse(c, status, svcErr.Message, nil)
	}
	return utils.ErrorResponse(c, status, svcErr.Message, svcErr.Err)
}

func principal(c *fiber.Ctx) service.Principal {
	accountId, _ := c.Locals("accountId").(string)
	email, _ := c.Locals("email").(string)
	role, _ := c.Locals("role").(string)
	return service.Principal{AccountID: accountId, Email: email, Role: role}
}
