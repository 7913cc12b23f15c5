package model

import "time"

const (
	CodeOwnerTicket   = "ticket"
	CodeOwnerAttendee = "attendee"
)

// IssuedCode reserves a check-in code for the whole system. Tickets and passes both
// register their code here, so the primary key rejects a code used anywhere else.
// Rows outlive their owner and a code is never handed out twice.
type IssuedCode struct {
	Code      string    `gorm:"primaryKey;size:8" json:"code"`
	OwnerType string    `gorm:"size:16;not null" json:"ownerType"`
	OwnerId   string    `gorm:"type:uuid;not null" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}
