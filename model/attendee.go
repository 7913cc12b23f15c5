package model

import "time"

// Attendee is one admission pass issued when a payment settles.
type Attendee struct {
	DTO
	EventId     string     `gorm:"type:uuid;index;not null" json:"eventId"`
	TicketId    string     `gorm:"type:uuid;index" json:"ticketId"`
	PaymentId   string     `gorm:"type:uuid;index" json:"paymentId"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CheckInCode string     `gorm:"size:8;uniqueIndex;not null" json:"checkInCode"`
	TableNumber int        `json:"tableNumber"`
	SeatNumber  int        `json:"seatNumber"`
	CheckedIn   string     `gorm:"size:3;not null;default:'No'" json:"checkedIn"`
	CheckedInAt *time.Time `json:"checkedInAt,omitempty"`
}

type CheckInInput struct {
	CheckInCode string `json:"checkInCode" validate:"required,len=8,alpha"`
}
