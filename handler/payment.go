package handler

import (
	"encoding/json"
	"errors"
	"event_ticketing/constants"
	"event_ticketing/gateway"
	"event_ticketing/model"
	"event_ticketing/service"
	"event_ticketing/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func (h *Handler) InitializePayment(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.InitializePaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	result, err := h.payments.InitializePayment(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, result)
}

// VerifyPayment is the redirect target after checkout.
func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if reference == "" {
		reference = c.Query("reference")
	}

	payment, err := h.payments.VerifyPayment(c.UserContext(), reference)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": constants.PAYMENT_SUCCESSFUL,
		"payment": payment,
	})
}

func (h *Handler) GetPayment(c *fiber.Ctx) error {
	payment, err := h.payments.GetPayment(c.UserContext(), c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}

func (h *Handler) GetPaymentPasses(c *fiber.Ctx) error {
	ctx := c.UserContext()
	payment, err := h.payments.AuthorizePayment(ctx, principal(c), c.Params("reference"))
	if err != nil {
		return respondError(c, err)
	}

	passes, err := h.payments.ListPasses(ctx, payment.Reference)
	if err != nil {
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, passes)
}

// PaymentWebhook settles a charge pushed by the gateway. Declined charges are
// acknowledged with 200 so the gateway stops redelivering them.
func (h *Handler) PaymentWebhook(c *fiber.Ctx) error {
	var evt gateway.WebhookEvent
	if err := json.Unmarshal(c.Body(), &evt); err != nil || len(evt.Data) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if !gateway.VerifySignature(h.webhookSecret, evt.Data, c.Get(gateway.SignatureHeader)) {
		log.Warnf("rejected webhook %q with bad signature", evt.Event)
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_SIGNATURE, nil)
	}

	var data gateway.WebhookData
	if err := json.Unmarshal(evt.Data, &data); err != nil || data.Reference == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.REFERENCE_REQUIRED, err)
	}

	payment, err := h.payments.VerifyPayment(c.UserContext(), data.Reference)
	if err != nil {
		var svcErr *service.Error
		if errors.As(err, &svcErr) && svcErr.Data != nil {
			return utils.SuccessResponse(c, fiber.StatusOK, svcErr.Data)
		}
		return respondError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}
