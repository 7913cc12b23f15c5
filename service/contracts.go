package service

import (
	"context"
	"event_ticketing/gateway"
	"event_ticketing/model"
	"io"
	"time"
)

type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filter model.FilterEventInput) ([]model.Event, int64, error)
	Save(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	CloseEnded(ctx context.Context, now time.Time) (int64, error)
}

type TicketStore interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	FindByID(ctx context.Context, id string) (*model.Ticket, error)
	FindByEvent(ctx context.Context, eventID string) ([]model.Ticket, error)
	ExistsForEvent(ctx context.Context, eventID string) (bool, error)
	Save(ctx context.Context, ticket *model.Ticket) error
	Delete(ctx context.Context, id string) error
}

type PaymentStore interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByReference(ctx context.Context, reference string) (*model.Payment, error)
	ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error)
	SettleSuccess(ctx context.Context, payment *model.Payment, passes []model.Attendee, paidAt time.Time) (bool, error)
	SettleFailure(ctx context.Context, reference string) (bool, error)
}

type AttendeeStore interface {
	FindByCode(ctx context.Context, eventID, code string) (*model.Attendee, error)
	MarkCheckedIn(ctx context.Context, id string, at time.Time) (bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Attendee, error)
	ListByPayment(ctx context.Context, paymentID string) ([]model.Attendee, error)
}

type AccountStore interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id string) (*model.Account, error)
}

// SeatAllocator hands out a strictly increasing sequence number per event.
type SeatAllocator interface {
	Next(ctx context.Context, eventID string) (int64, error)
}

type Gateway interface {
	InitializeCharge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResponse, error)
	FetchCharge(ctx context.Context, reference string) (*gateway.ChargeStatus, error)
}

type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, name string) (url, publicID string, err error)
	Destroy(ctx context.Context, publicID string) error
}

type Publisher interface {
	Publish(ctx context.Context, evt model.DomainEvent) error
}

// Publishers fans one event out to several sinks and returns the first error.
type Publishers []Publisher

func (ps Publishers) Publish(ctx context.Context, evt model.DomainEvent) error {
	var first error
	for _, p := range ps {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, evt); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Principal is the authenticated caller as resolved by the auth middleware.
type Principal struct {
	AccountID string
	Email     string
	Role      string
}
