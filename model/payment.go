package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "Pending"
	PaymentSuccessful PaymentStatus = "Successful"
	PaymentFailed     PaymentStatus = "Failed"
)

type Payment struct {
	DTO
	EventId          string                      `gorm:"type:uuid;index;not null" json:"eventId"`
	EventTitle       string                      `json:"eventTitle"`
	Name             string                      `json:"name"`
	Email            string                      `json:"email"`
	Reference        string                      `gorm:"size:12;uniqueIndex;not null" json:"reference"`
	Amount           decimal.Decimal             `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency         string                      `gorm:"size:3;not null" json:"currency"`
	Status           PaymentStatus               `gorm:"index;not null;default:'Pending'" json:"status"`
	PaymentDate      *time.Time                  `json:"paymentDate,omitempty"`
	TotalTicket      int                         `gorm:"not null" json:"totalTicket"`
	TicketIds        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"ticketIds"`
	CheckoutUrl      string                      `json:"checkoutUrl"`
	GatewayReference string                      `json:"gatewayReference"`
}

type InitializePaymentInput struct {
	TicketId string `json:"ticketId" validate:"required,uuid"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type PaymentInitResult struct {
	Reference   string   `json:"reference"`
	CheckoutUrl string   `json:"checkoutUrl"`
	Payment     *Payment `json:"payment"`
}
