package service

import (
	"context"
	"errors"
	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/monitoring"
	"event_ticketing/utils"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds retries after a check-in code collides with an existing one.
const maxCodeAttempts = 5

type Ledger struct {
	events    EventStore
	tickets   TicketStore
	seats     SeatAllocator
	publisher Publisher
	newCode   func() (string, error)
	now       func() time.Time
}

func NewLedger(events EventStore, tickets TicketStore, seats SeatAllocator, publisher Publisher) *Ledger {
	return &Ledger{
		events:    events,
		tickets:   tickets,
		seats:     seats,
		publisher: publisher,
		newCode:   utils.GenerateCheckInCode,
		now:       time.Now,
	}
}

// CreateTicket registers the event's ticket class. The class record takes the next
// seat of the event (the first seat for a fresh event) and is never admitted at the
// door, so that seat is not sold; passes issued on payment take the seats after it.
func (l *Ledger) CreateTicket(ctx context.Context, input model.CreateTicketInput) (*model.Ticket, error) {
	event, err := l.events.FindByID(ctx, input.EventId)
	if err != nil {
		return nil, storeError(err, constants.EVENT_NOT_FOUND)
	}

	exists, err := l.tickets.ExistsForEvent(ctx, event.ID)
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	if exists {
		return nil, Conflict(constants.TICKET_EXISTS, nil)
	}

	seq, err := l.seats.Next(ctx, event.ID)
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	table, seat := AssignSeat(seq)

	numberOfTicket := input.NumberOfTicket
	if numberOfTicket <= 0 {
		numberOfTicket = 1
	}

	ticket := &model.Ticket{
		EventId:        event.ID,
		EventTitle:     event.Title,
		TicketType:     input.TicketType,
		Price:          input.Price,
		TotalQuantity:  input.TotalQuantity,
		NumberOfTicket: numberOfTicket,
		TableNumber:    table,
		SeatNumber:     seat,
		CheckedIn:      constants.CHECKED_IN_NO,
		SpecialRequest: input.SpecialRequest,
		CarAccess:      input.CarAccess,
	}

	for attempt := 1; ; attempt++ {
		code, err := l.newCode()
		if err != nil {
			return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
		}
		ticket.ID = ""
		ticket.CheckInCode = code

		err = l.tickets.Create(ctx, ticket)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
		}

		// the unique index on event_id fires when a concurrent request won the race
		if exists, _ := l.tickets.ExistsForEvent(ctx, event.ID); exists {
			return nil, Conflict(constants.TICKET_EXISTS, err)
		}
		if attempt == maxCodeAttempts {
			return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
		}
		log.Warnf("check-in code collision for event %s, retrying (%d/%d)", event.ID, attempt, maxCodeAttempts)
	}

	monitoring.RecordTicketCreated()
	l.publish(ctx, model.DomainEvent{
		Type:       model.EventTicketCreated,
		EventId:    event.ID,
		OccurredAt: l.now(),
	})

	return ticket, nil
}

func (l *Ledger) GetAllTickets(ctx context.Context, eventID string) ([]model.Ticket, error) {
	tickets, err := l.tickets.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	if len(tickets) == 0 {
		return nil, NotFound(constants.TICKETS_NOT_FOUND, nil)
	}
	return tickets, nil
}

func (l *Ledger) GetTicketById(ctx context.Context, id string) (*model.Ticket, error) {
	ticket, err := l.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, constants.TICKET_NOT_FOUND)
	}
	return ticket, nil
}

// UpdateTicket merges the supplied fields without re-checking quantities.
// The check-in code cannot be changed once issued.
func (l *Ledger) UpdateTicket(ctx context.Context, id string, input model.EditTicketInput) (*model.Ticket, error) {
	if input.CheckInCode.Set {
		return nil, BadRequest(constants.CHECK_IN_CODE_RO, nil)
	}

	ticket, err := l.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, constants.TICKET_NOT_FOUND)
	}

	if err := copier.CopyWithOption(ticket, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	if input.Price != nil {
		ticket.Price = *input.Price
	}

	if err := l.tickets.Save(ctx, ticket); err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	return ticket, nil
}

func (l *Ledger) DeleteTicket(ctx context.Context, id string) error {
	if err := l.tickets.Delete(ctx, id); err != nil {
		return storeError(err, constants.TICKET_NOT_FOUND)
	}
	return nil
}

func (l *Ledger) publish(ctx context.Context, evt model.DomainEvent) {
	if l.publisher == nil {
		return
	}
	if err := l.publisher.Publish(ctx, evt); err != nil {
		log.Warnf("publish %s for event %s: %v", evt.Type, evt.EventId, err)
	}
}

// storeError maps a repository error onto the service taxonomy.
func storeError(err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(notFound, err)
	}
	return Internal(constants.ERROR_INTERNAL_ERROR, err)
}
