package service

import (
	"context"
	"encoding/json"
	"errors"
	"event_ticketing/config"
	"event_ticketing/constants"
	"event_ticketing/gateway"
	"event_ticketing/model"
	"event_ticketing/monitoring"
	"event_ticketing/utils"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const reconcileBatchSize = 50

type PaymentService struct {
	events    EventStore
	tickets   TicketStore
	payments  PaymentStore
	attendees AttendeeStore
	seats     SeatAllocator
	gateway   Gateway
	notifier  Notifier
	publisher Publisher
	cfg       config.GatewayConfig

	newReference func() (string, error)
	newCode      func() (string, error)
	now          func() time.Time
}

func NewPaymentService(
	events EventStore,
	tickets TicketStore,
	payments PaymentStore,
	attendees AttendeeStore,
	seats SeatAllocator,
	gw Gateway,
	notifier Notifier,
	publisher Publisher,
	cfg config.GatewayConfig,
) *PaymentService {
	return &PaymentService{
		events:       events,
		tickets:      tickets,
		payments:     payments,
		attendees:    attendees,
		seats:        seats,
		gateway:      gw,
		notifier:     notifier,
		publisher:    publisher,
		cfg:          cfg,
		newReference: utils.GenerateReference,
		newCode:      utils.GenerateCheckInCode,
		now:          time.Now,
	}
}

func (s *PaymentService) InitializePayment(ctx context.Context, input model.InitializePaymentInput) (*model.PaymentInitResult, error) {
	ticket, err := s.tickets.FindByID(ctx, input.TicketId)
	if err != nil {
		return nil, storeError(err, constants.TICKET_NOT_FOUND)
	}
	event, err := s.events.FindByID(ctx, ticket.EventId)
	if err != nil {
		return nil, storeError(err, constants.EVENT_NOT_FOUND)
	}
	if ticket.SoldTicket >= ticket.TotalQuantity {
		monitoring.RecordPaymentInitialized("sold_out")
		return nil, Conflict(constants.SOLD_OUT, nil)
	}

	reference, err := s.newReference()
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}

	quantity := ticket.NumberOfTicket
	if quantity <= 0 {
		quantity = 1
	}
	amount := event.Price.Mul(decimal.NewFromInt(int64(quantity)))

	charge, err := s.gateway.InitializeCharge(ctx, gateway.ChargeRequest{
		Customer:    gateway.Customer{Name: input.Name, Email: input.Email},
		Amount:      json.Number(amount.String()),
		Currency:    s.cfg.Currency,
		Reference:   reference,
		RedirectURL: s.cfg.RedirectURL,
	})
	if err != nil {
		monitoring.RecordPaymentInitialized("gateway_error")
		return nil, Upstream(constants.GATEWAY_UNAVAILABLE, err)
	}

	payment := &model.Payment{
		EventId:          event.ID,
		EventTitle:       event.Title,
		Name:             input.Name,
		Email:            input.Email,
		Reference:        reference,
		Amount:           amount,
		Currency:         s.cfg.Currency,
		Status:           model.PaymentPending,
		TotalTicket:      quantity,
		TicketIds:        datatypes.JSONSlice[string]{ticket.ID},
		CheckoutUrl:      charge.Data.CheckoutURL,
		GatewayReference: charge.Data.Reference,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	monitoring.RecordPaymentInitialized("pending")

	result := &model.PaymentInitResult{
		Reference:   charge.Data.Reference,
		CheckoutUrl: charge.Data.CheckoutURL,
		Payment:     payment,
	}
	if result.Reference == "" {
		result.Reference = reference
	}
	return result, nil
}

// VerifyPayment settles a payment from the gateway's view of the charge. A payment
// that already left Pending is returned unchanged.
func (s *PaymentService) VerifyPayment(ctx context.Context, reference string) (*model.Payment, error) {
	if reference == "" {
		return nil, BadRequest(constants.REFERENCE_REQUIRED, nil)
	}

	charge, err := s.gateway.FetchCharge(ctx, reference)
	if err != nil {
		return nil, Upstream(constants.GATEWAY_UNAVAILABLE, err)
	}
	return s.applyCharge(ctx, reference, charge)
}

// applyCharge settles the payment behind charge. Any state other than success
// counts as a failure.
func (s *PaymentService) applyCharge(ctx context.Context, reference string, charge *gateway.ChargeStatus) (*model.Payment, error) {
	lookup := charge.Data.Reference
	if lookup == "" {
		lookup = reference
	}
	payment, err := s.payments.FindByReference(ctx, lookup)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, BadRequest(constants.TRANSACTION_NOT_FOUND, err)
		}
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}

	if payment.Status != model.PaymentPending {
		return s.settledOutcome(payment)
	}

	if charge.Succeeded() {
		return s.settleSuccess(ctx, payment)
	}
	return s.settleFailure(ctx, payment)
}

func (s *PaymentService) GetPayment(ctx context.Context, reference string) (*model.Payment, error) {
	payment, err := s.payments.FindByReference(ctx, reference)
	if err != nil {
		return nil, storeError(err, constants.PAYMENT_NOT_FOUND)
	}
	return payment, nil
}

// AuthorizePayment loads the payment and checks that principal is its payer, the
// organizer of its event, or an Admin.
func (s *PaymentService) AuthorizePayment(ctx context.Context, principal Principal, reference string) (*model.Payment, error) {
	payment, err := s.GetPayment(ctx, reference)
	if err != nil {
		return nil, err
	}
	if principal.Role == constants.ROLE_ADMIN ||
		(principal.Email != "" && strings.EqualFold(principal.Email, payment.Email)) {
		return payment, nil
	}

	event, err := s.events.FindByID(ctx, payment.EventId)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	if event != nil && event.OrganizerId == principal.AccountID {
		return payment, nil
	}
	return nil, Forbidden(constants.NOT_PERMISSION, nil)
}

// ListPasses returns the admission passes a payment issued.
func (s *PaymentService) ListPasses(ctx context.Context, reference string) ([]model.Attendee, error) {
	payment, err := s.GetPayment(ctx, reference)
	if err != nil {
		return nil, err
	}
	passes, err := s.attendees.ListByPayment(ctx, payment.ID)
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	return passes, nil
}

// ReconcilePending settles payments left Pending for longer than olderThan whose
// charge reached a final state at the gateway, and returns how many it settled.
// Charges still processing are left for a later run.
func (s *PaymentService) ReconcilePending(ctx context.Context, olderThan time.Duration) (int, error) {
	pending, err := s.payments.ListPendingBefore(ctx, s.now().Add(-olderThan), reconcileBatchSize)
	if err != nil {
		return 0, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}

	processed := 0
	for _, p := range pending {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		charge, err := s.gateway.FetchCharge(ctx, p.Reference)
		if err != nil {
			log.Warnf("reconcile payment %s: %v", p.Reference, err)
			continue
		}
		// TODO: expire payments whose charge stays non-final past the gateway's checkout expiry
		if !charge.Terminal() {
			continue
		}
		_, err = s.applyCharge(ctx, p.Reference, charge)
		switch {
		case err == nil:
			processed++
		case KindOf(err) == KindBadRequest:
			// declined at the gateway; already marked Failed
			processed++
		default:
			log.Warnf("reconcile payment %s: %v", p.Reference, err)
		}
	}
	return processed, nil
}

func (s *PaymentService) settledOutcome(payment *model.Payment) (*model.Payment, error) {
	if payment.Status == model.PaymentFailed {
		return nil, s.failedError(payment)
	}
	return payment, nil
}

func (s *PaymentService) failedError(payment *model.Payment) error {
	err := BadRequest(constants.PAYMENT_FAILED, nil)
	err.Data = payment
	return err
}

func (s *PaymentService) settleSuccess(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	var ticket *model.Ticket
	if len(payment.TicketIds) > 0 {
		t, err := s.tickets.FindByID(ctx, payment.TicketIds[0])
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
		}
		ticket = t
	}

	passes, err := s.issuePasses(ctx, payment, ticket)
	if err != nil {
		return nil, err
	}

	paidAt := s.now()
	var applied bool
	for attempt := 1; ; attempt++ {
		applied, err = s.payments.SettleSuccess(ctx, payment, passes, paidAt)
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt == maxCodeAttempts {
			return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
		}
		log.Warnf("check-in code collision settling %s, retrying (%d/%d)", payment.Reference, attempt, maxCodeAttempts)
		if err := s.recode(passes); err != nil {
			return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if !applied {
		// settled concurrently; report whatever state won
		current, err := s.payments.FindByReference(ctx, payment.Reference)
		if err != nil {
			return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
		}
		return s.settledOutcome(current)
	}

	payment.Status = model.PaymentSuccessful
	payment.PaymentDate = &paidAt
	monitoring.RecordPaymentSettled(string(model.PaymentSuccessful), len(passes))

	var tickets []model.Ticket
	if ticket != nil {
		tickets = append(tickets, *ticket)
	}
	if s.notifier != nil {
		if err := s.notifier.PaymentSucceeded(ctx, payment, passes, tickets); err != nil {
			log.Errorf("send success mail for %s: %v", payment.Reference, err)
		}
	}

	evt := model.DomainEvent{
		Type:       model.EventPaymentSuccessful,
		EventId:    payment.EventId,
		Reference:  payment.Reference,
		OccurredAt: paidAt,
	}
	if event, err := s.events.FindByID(ctx, payment.EventId); err == nil {
		evt.SoldTicket = event.SoldTicket
	}
	s.publish(ctx, evt)

	return payment, nil
}

func (s *PaymentService) settleFailure(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	applied, err := s.payments.SettleFailure(ctx, payment.Reference)
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	if !applied {
		current, err := s.payments.FindByReference(ctx, payment.Reference)
		if err != nil {
			return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
		}
		return s.settledOutcome(current)
	}

	payment.Status = model.PaymentFailed
	monitoring.RecordPaymentSettled(string(model.PaymentFailed), 0)

	if s.notifier != nil {
		if err := s.notifier.PaymentFailed(ctx, payment); err != nil {
			log.Errorf("send failure mail for %s: %v", payment.Reference, err)
		}
	}
	s.publish(ctx, model.DomainEvent{
		Type:       model.EventPaymentFailed,
		EventId:    payment.EventId,
		Reference:  payment.Reference,
		OccurredAt: s.now(),
	})

	return nil, s.failedError(payment)
}

// issuePasses builds one admission pass per purchased seat, each taking the
// event's next seat.
func (s *PaymentService) issuePasses(ctx context.Context, payment *model.Payment, ticket *model.Ticket) ([]model.Attendee, error) {
	passes := make([]model.Attendee, 0, payment.TotalTicket)
	for i := 0; i < payment.TotalTicket; i++ {
		seq, err := s.seats.Next(ctx, payment.EventId)
		if err != nil {
			return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
		}
		table, seat := AssignSeat(seq)

		code, err := s.newCode()
		if err != nil {
			return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
		}

		pass := model.Attendee{
			EventId:     payment.EventId,
			PaymentId:   payment.ID,
			Name:        payment.Name,
			Email:       payment.Email,
			CheckInCode: code,
			TableNumber: table,
			SeatNumber:  seat,
			CheckedIn:   constants.CHECKED_IN_NO,
		}
		if ticket != nil {
			pass.TicketId = ticket.ID
		}
		passes = append(passes, pass)
	}
	return passes, nil
}

func (s *PaymentService) recode(passes []model.Attendee) error {
	for i := range passes {
		code, err := s.newCode()
		if err != nil {
			return err
		}
		passes[i].ID = ""
		passes[i].CheckInCode = code
	}
	return nil
}

func (s *PaymentService) publish(ctx context.Context, evt model.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		log.Warnf("publish %s for %s: %v", evt.Type, evt.Reference, err)
	}
}
