package router

import (
	"event_ticketing/constants"
	"event_ticketing/handler"
	"event_ticketing/helper"
	"event_ticketing/middleware"
	"event_ticketing/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, h *handler.Handler, tokens *helper.TokenIssuer) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	protected := middleware.Protected(tokens)
	organizer := middleware.RequireRole(constants.ROLE_ORGANIZER, constants.ROLE_ADMIN)

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), h.Register)
	auth.Post("/login", validate.Login(), h.Login)
	auth.Get("/me", protected, h.Me)

	event := v1.Group("/events")
	event.Get("/", validate.FilterEvents(), h.GetEvents)
	event.Get("/:eventId", validate.GetById("eventId"), h.GetEventById)
	event.Post("/", protected, organizer, validate.CreateEvent(), h.CreateEvent)
	event.Put("/:eventId", protected, organizer, validate.GetById("eventId"), validate.EditEvent(), h.EditEvent)
	event.Delete("/:eventId", protected, organizer, validate.GetById("eventId"), h.DeleteEvent)
	event.Post("/:eventId/image", protected, organizer, validate.GetById("eventId"), h.UploadEventImage)
	event.Get("/:eventId/tickets", validate.GetById("eventId"), h.GetEventTickets)
	event.Get("/:eventId/attendees", protected, organizer, validate.GetById("eventId"), h.GetEventAttendees)
	event.Post("/:eventId/check-in", protected, organizer, validate.GetById("eventId"), validate.CheckIn(), h.CheckIn)
	event.Get("/:eventId/live", handler.RequireUpgrade, websocket.New(h.EventFeed))

	ticket := v1.Group("/tickets")
	ticket.Post("/", protected, organizer, validate.CreateTicket(), h.CreateTicket)
	ticket.Get("/:ticketId", validate.GetById("ticketId"), h.GetTicketById)
	ticket.Put("/:ticketId", protected, organizer, validate.GetById("ticketId"), validate.EditTicket(), h.EditTicket)
	ticket.Delete("/:ticketId", protected, organizer, validate.GetById("ticketId"), h.DeleteTicket)

	payment := v1.Group("/payments")
	payment.Post("/initialize", validate.InitializePayment(), h.InitializePayment)
	payment.Get("/verify", h.VerifyPayment)
	payment.Get("/verify/:reference", h.VerifyPayment)
	payment.Post("/webhook", h.PaymentWebhook)
	payment.Get("/:reference", h.GetPayment)
	payment.Get("/:reference/passes", protected, h.GetPaymentPasses)
}
