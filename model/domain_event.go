package model

import "time"

const (
	EventPaymentSuccessful = "payment.successful"
	EventPaymentFailed     = "payment.failed"
	EventAttendeeCheckedIn = "attendee.checked_in"
	EventTicketCreated     = "ticket.created"
)

// DomainEvent is published to the broker and to the live feed of EventId.
type DomainEvent struct {
	Type       string    `json:"type"`
	EventId    string    `json:"eventId"`
	Reference  string    `json:"reference,omitempty"`
	AttendeeId string    `json:"attendeeId,omitempty"`
	SoldTicket int       `json:"soldTicket,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
