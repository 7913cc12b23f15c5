package model

import "github.com/shopspring/decimal"

// Ticket is the single ticket class an event sells.
type Ticket struct {
	DTO
	EventId        string          `gorm:"type:uuid;uniqueIndex;not null" json:"eventId"`
	EventTitle     string          `json:"eventTitle"`
	TicketType     string          `gorm:"not null" json:"ticketType"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	TotalQuantity  int             `gorm:"not null" json:"totalQuantity"`
	SoldTicket     int             `gorm:"not null;default:0" json:"soldTicket"`
	NumberOfTicket int             `gorm:"not null;default:1" json:"numberOfTicket"`
	TableNumber    int             `json:"tableNumber"`
	SeatNumber     int             `json:"seatNumber"`
	CheckInCode    string          `gorm:"size:8;uniqueIndex;not null" json:"checkInCode"`
	CheckedIn      string          `gorm:"size:3;not null;default:'No'" json:"checkedIn"`
	SpecialRequest string          `json:"specialRequest"`
	CarAccess      bool            `json:"carAccess"`
}

type CreateTicketInput struct {
	EventId        string          `json:"eventId" validate:"required,uuid"`
	TicketType     string          `json:"ticketType" validate:"required"`
	Price          decimal.Decimal `json:"price" validate:"gte=0"`
	TotalQuantity  int             `json:"totalQuantity" validate:"required,gt=0"`
	NumberOfTicket int             `json:"numberOfTicket" validate:"omitempty,gt=0"`
	SpecialRequest string          `json:"specialRequest" validate:"omitempty"`
	CarAccess      bool            `json:"carAccess"`
}

// EditTicketInput carries CheckInCode only so that attempts to change it can be
// rejected; the key counts as sent even when its value is null.
type EditTicketInput struct {
	TicketType     *string          `json:"ticketType"`
	Price          *decimal.Decimal `json:"price" validate:"omitempty,gte=0" copier:"-"`
	TotalQuantity  *int             `json:"totalQuantity" validate:"omitempty,gte=0"`
	SoldTicket     *int             `json:"soldTicket" validate:"omitempty,gte=0"`
	NumberOfTicket *int             `json:"numberOfTicket" validate:"omitempty,gt=0"`
	TableNumber    *int             `json:"tableNumber" validate:"omitempty,gt=0"`
	SeatNumber     *int             `json:"seatNumber" validate:"omitempty,gt=0"`
	CheckedIn      *string          `json:"checkedIn" validate:"omitempty,oneof=Yes No"`
	SpecialRequest *string          `json:"specialRequest"`
	CarAccess      *bool            `json:"carAccess"`
	CheckInCode    OptionalString   `json:"checkInCode" copier:"-"`
}
