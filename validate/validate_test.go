package validate

import (
	"event_ticketing/model"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(path string, mw fiber.Handler, capture *any) *fiber.App {
	app := fiber.New()
	app.Post(path, mw, func(c *fiber.Ctx) error {
		*capture = c.Locals("input")
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func post(t *testing.T, app *fiber.App, path, payload string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateTicket(t *testing.T) {
	var captured any
	app := newApp("/tickets", CreateTicket(), &captured)

	status := post(t, app, "/tickets", `{"eventId":"3f1f5c1e-8f7a-4c1e-9a59-5b1a6f0d2c11","ticketType":"VIP","price":5000,"totalQuantity":10}`)
	require.Equal(t, fiber.StatusNoContent, status)

	input, ok := captured.(model.CreateTicketInput)
	require.True(t, ok)
	assert.Equal(t, "VIP", input.TicketType)
	assert.Equal(t, "5000", input.Price.String())
	assert.Equal(t, 10, input.TotalQuantity)
}

func TestCreateTicket_Rejects(t *testing.T) {
	var captured any
	app := newApp("/tickets", CreateTicket(), &captured)

	cases := map[string]string{
		"missing event":     `{"ticketType":"VIP","price":5000,"totalQuantity":10}`,
		"event not uuid":    `{"eventId":"42","ticketType":"VIP","price":5000,"totalQuantity":10}`,
		"zero quantity":     `{"eventId":"3f1f5c1e-8f7a-4c1e-9a59-5b1a6f0d2c11","ticketType":"VIP","price":5000,"totalQuantity":0}`,
		"negative price":    `{"eventId":"3f1f5c1e-8f7a-4c1e-9a59-5b1a6f0d2c11","ticketType":"VIP","price":-1,"totalQuantity":10}`,
		"malformed payload": `{"eventId":`,
	}
	for name, payload := range cases {
		assert.Equal(t, fiber.StatusBadRequest, post(t, app, "/tickets", payload), name)
	}
	assert.Nil(t, captured)
}

func TestEditTicket_KeepsCheckInCodeForRejection(t *testing.T) {
	var captured any
	app := newApp("/tickets/x", EditTicket(), &captured)

	status := post(t, app, "/tickets/x", `{"checkInCode":"AbcdEfgh"}`)
	require.Equal(t, fiber.StatusNoContent, status)

	input := captured.(model.EditTicketInput)
	require.True(t, input.CheckInCode.Set)
	require.NotNil(t, input.CheckInCode.Value)
	assert.Equal(t, "AbcdEfgh", *input.CheckInCode.Value)
}

func TestEditTicket_NullCheckInCodeCountsAsSent(t *testing.T) {
	var captured any
	app := newApp("/tickets/x", EditTicket(), &captured)

	status := post(t, app, "/tickets/x", `{"ticketType":"Regular","checkInCode":null}`)
	require.Equal(t, fiber.StatusNoContent, status)

	input := captured.(model.EditTicketInput)
	assert.True(t, input.CheckInCode.Set)
	assert.Nil(t, input.CheckInCode.Value)
}

func TestEditTicket_AbsentCheckInCode(t *testing.T) {
	var captured any
	app := newApp("/tickets/x", EditTicket(), &captured)

	status := post(t, app, "/tickets/x", `{"ticketType":"Regular"}`)
	require.Equal(t, fiber.StatusNoContent, status)

	assert.False(t, captured.(model.EditTicketInput).CheckInCode.Set)
}

func TestCheckIn(t *testing.T) {
	var captured any
	app := newApp("/check-in", CheckIn(), &captured)

	assert.Equal(t, fiber.StatusNoContent, post(t, app, "/check-in", `{"checkInCode":"AbcdEfgh"}`))
	assert.Equal(t, fiber.StatusBadRequest, post(t, app, "/check-in", `{"checkInCode":"Abcd123!"}`))
	assert.Equal(t, fiber.StatusBadRequest, post(t, app, "/check-in", `{"checkInCode":"short"}`))
}

func TestGetById(t *testing.T) {
	app := fiber.New()
	app.Get("/events/:eventId", GetById("eventId"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/events/3f1f5c1e-8f7a-4c1e-9a59-5b1a6f0d2c11", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/events/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
