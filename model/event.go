package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Event struct {
	DTO
	Slug          string          `gorm:"uniqueIndex;not null" json:"slug"`
	Title         string          `gorm:"not null" json:"title"`
	Category      string          `gorm:"index" json:"category"`
	Description   string          `json:"description"`
	Venue         string          `json:"venue"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Capacity      int             `gorm:"not null;default:0" json:"capacity"`
	SoldTicket    int             `gorm:"not null;default:0" json:"soldTicket"`
	SeatSequence  int64           `gorm:"not null;default:0" json:"-"`
	StartsAt      time.Time       `gorm:"not null" json:"startsAt"`
	EndsAt        *time.Time      `json:"endsAt,omitempty"`
	Status        string          `gorm:"not null;default:'Upcoming'" json:"status"`
	ImageUrl      string          `json:"imageUrl"`
	ImagePublicId string          `json:"-"`
	OrganizerId   string          `gorm:"type:uuid;index" json:"organizerId"`
}

type CreateEventInput struct {
	Title       string          `json:"title" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description" validate:"omitempty"`
	Venue       string          `json:"venue" validate:"omitempty"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Capacity    int             `json:"capacity" validate:"gte=0"`
	StartsAt    time.Time       `json:"startsAt" validate:"required"`
	EndsAt      *time.Time      `json:"endsAt" validate:"omitempty"`
}

type EditEventInput struct {
	Title       *string          `json:"title" validate:"omitempty,min=1"`
	Category    *string          `json:"category" validate:"omitempty"`
	Description *string          `json:"description" validate:"omitempty"`
	Venue       *string          `json:"venue" validate:"omitempty"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0" copier:"-"`
	Capacity    *int             `json:"capacity" validate:"omitempty,gte=0"`
	StartsAt    *time.Time       `json:"startsAt" validate:"omitempty" copier:"-"`
	EndsAt      *time.Time       `json:"endsAt" validate:"omitempty" copier:"-"`
}

type FilterEventInput struct {
	Pagination
	Category string `query:"category"`
	Status   string `query:"status" validate:"omitempty,oneof=Upcoming Ended"`
}
