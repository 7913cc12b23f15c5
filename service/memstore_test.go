package service

import (
	"context"
	"event_ticketing/constants"
	"event_ticketing/gateway"
	"event_ticketing/model"
	"event_ticketing/utils"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// memDB backs the in-memory stores with the same unique constraints as the schema:
// tickets.event_id and the issued_codes registry shared by tickets and passes.
type memDB struct {
	mu        sync.Mutex
	clock     time.Time
	events    map[string]*model.Event
	tickets   map[string]*model.Ticket
	payments  map[string]*model.Payment
	attendees map[string]*model.Attendee
	accounts  map[string]*model.Account
	codes     map[string]string
	seq       map[string]int64
}

func newMemDB() *memDB {
	return &memDB{
		clock:     time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		events:    map[string]*model.Event{},
		tickets:   map[string]*model.Ticket{},
		payments:  map[string]*model.Payment{},
		attendees: map[string]*model.Attendee{},
		accounts:  map[string]*model.Account{},
		codes:     map[string]string{},
		seq:       map[string]int64{},
	}
}

func (db *memDB) stamp(dto *model.DTO) {
	db.clock = db.clock.Add(time.Second)
	if dto.ID == "" {
		dto.ID = uuid.NewString()
	}
	dto.CreatedAt = db.clock
	dto.UpdatedAt = db.clock
}

func (db *memDB) addEvent(title string, price int64) *model.Event {
	db.mu.Lock()
	defer db.mu.Unlock()
	event := &model.Event{
		Title:       title,
		Slug:        fmt.Sprintf("event-%d", len(db.events)+1),
		Price:       decimalFromInt(price),
		Status:      constants.EVENT_UPCOMING,
		OrganizerId: "organizer-1",
	}
	db.stamp(&event.DTO)
	db.events[event.ID] = event
	return clone(event)
}

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

type memEvents struct{ *memDB }

func (s memEvents) Create(_ context.Context, event *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.Slug == event.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	s.stamp(&event.DTO)
	s.events[event.ID] = clone(event)
	return nil
}

func (s memEvents) FindByID(_ context.Context, id string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(e), nil
}

func (s memEvents) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s memEvents) List(_ context.Context, filter model.FilterEventInput) ([]model.Event, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, e := range s.events {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (s memEvents) Save(_ context.Context, event *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = clone(event)
	return nil
}

func (s memEvents) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.events, id)
	return nil
}

func (s memEvents) CloseEnded(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, e := range s.events {
		if e.Status == constants.EVENT_UPCOMING && e.EndsAt != nil && e.EndsAt.Before(now) {
			e.Status = constants.EVENT_ENDED
			n++
		}
	}
	return n, nil
}

type memTickets struct{ *memDB }

func (s memTickets) Create(_ context.Context, ticket *model.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.EventId == ticket.EventId {
			return gorm.ErrDuplicatedKey
		}
	}
	if _, taken := s.codes[ticket.CheckInCode]; taken {
		return gorm.ErrDuplicatedKey
	}
	s.stamp(&ticket.DTO)
	s.tickets[ticket.ID] = clone(ticket)
	s.codes[ticket.CheckInCode] = model.CodeOwnerTicket
	return nil
}

func (s memTickets) FindByID(_ context.Context, id string) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tickets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(t), nil
}

func (s memTickets) FindByEvent(_ context.Context, eventID string) ([]model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Ticket
	for _, t := range s.tickets {
		if t.EventId == eventID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s memTickets) ExistsForEvent(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tickets {
		if t.EventId == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (s memTickets) Save(_ context.Context, ticket *model.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets[ticket.ID] = clone(ticket)
	return nil
}

func (s memTickets) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.tickets, id)
	return nil
}

type memPayments struct{ *memDB }

func (s memPayments) Create(_ context.Context, payment *model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[payment.Reference]; ok {
		return gorm.ErrDuplicatedKey
	}
	s.stamp(&payment.DTO)
	s.payments[payment.Reference] = clone(payment)
	return nil
}

func (s memPayments) FindByReference(_ context.Context, reference string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[reference]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(p), nil
}

func (s memPayments) ListPendingBefore(_ context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Payment
	for _, p := range s.payments {
		if p.Status == model.PaymentPending && p.CreatedAt.Before(cutoff) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s memPayments) SettleSuccess(_ context.Context, payment *model.Payment, passes []model.Attendee, paidAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.payments[payment.Reference]
	if !ok || stored.Status != model.PaymentPending {
		return false, nil
	}

	// issued_codes primary key
	batch := map[string]bool{}
	for _, pass := range passes {
		if _, taken := s.codes[pass.CheckInCode]; taken || batch[pass.CheckInCode] {
			return false, gorm.ErrDuplicatedKey
		}
		batch[pass.CheckInCode] = true
	}

	stored.Status = model.PaymentSuccessful
	stored.PaymentDate = &paidAt
	if e, ok := s.events[payment.EventId]; ok {
		e.SoldTicket += payment.TotalTicket
	}
	for _, id := range payment.TicketIds {
		if t, ok := s.tickets[id]; ok {
			t.SoldTicket += payment.TotalTicket
		}
	}
	for i := range passes {
		s.stamp(&passes[i].DTO)
		s.attendees[passes[i].ID] = clone(&passes[i])
		s.codes[passes[i].CheckInCode] = model.CodeOwnerAttendee
	}
	return true, nil
}

func (s memPayments) SettleFailure(_ context.Context, reference string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.payments[reference]
	if !ok || stored.Status != model.PaymentPending {
		return false, nil
	}
	stored.Status = model.PaymentFailed
	return true, nil
}

type memAttendees struct{ *memDB }

func (s memAttendees) FindByCode(_ context.Context, eventID, code string) (*model.Attendee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attendees {
		if a.EventId == eventID && a.CheckInCode == code {
			return clone(a), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s memAttendees) MarkCheckedIn(_ context.Context, id string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attendees[id]
	if !ok || a.CheckedIn != constants.CHECKED_IN_NO {
		return false, nil
	}
	a.CheckedIn = constants.CHECKED_IN_YES
	a.CheckedInAt = &at
	return true, nil
}

func (s memAttendees) ListByEvent(_ context.Context, eventID string) ([]model.Attendee, error) {
	return s.filter(func(a *model.Attendee) bool { return a.EventId == eventID }), nil
}

func (s memAttendees) ListByPayment(_ context.Context, paymentID string) ([]model.Attendee, error) {
	return s.filter(func(a *model.Attendee) bool { return a.PaymentId == paymentID }), nil
}

func (s memAttendees) filter(keep func(*model.Attendee) bool) []model.Attendee {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Attendee
	for _, a := range s.attendees {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TableNumber != out[j].TableNumber {
			return out[i].TableNumber < out[j].TableNumber
		}
		return out[i].SeatNumber < out[j].SeatNumber
	})
	return out
}

type memAccounts struct{ *memDB }

func (s memAccounts) Create(_ context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == account.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	s.stamp(&account.DTO)
	s.accounts[account.ID] = clone(account)
	return nil
}

func (s memAccounts) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			return clone(a), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s memAccounts) FindByID(_ context.Context, id string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(a), nil
}

// memSeats mirrors the Redis INCR counter.
type memSeats struct{ *memDB }

func (s memSeats) Next(_ context.Context, eventID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[eventID]++
	return s.seq[eventID], nil
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) InitializeCharge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*gateway.ChargeResponse)
	return resp, args.Error(1)
}

func (m *mockGateway) FetchCharge(ctx context.Context, reference string) (*gateway.ChargeStatus, error) {
	args := m.Called(ctx, reference)
	status, _ := args.Get(0).(*gateway.ChargeStatus)
	return status, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(to, subject, htmlBody string, attachments ...utils.Attachment) error {
	args := m.Called(to, subject, htmlBody, attachments)
	return args.Error(0)
}

type recordingNotifier struct {
	mu        sync.Mutex
	succeeded []string
	failed    []string
	passes    map[string][]model.Attendee
}

func (n *recordingNotifier) PaymentSucceeded(_ context.Context, payment *model.Payment, passes []model.Attendee, _ []model.Ticket) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.succeeded = append(n.succeeded, payment.Reference)
	if n.passes == nil {
		n.passes = map[string][]model.Attendee{}
	}
	n.passes[payment.Reference] = passes
	return nil
}

func (n *recordingNotifier) PaymentFailed(_ context.Context, payment *model.Payment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, payment.Reference)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evt model.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeImages struct {
	uploads   int
	destroyed []string
	failWith  error
}

func (f *fakeImages) Upload(_ context.Context, _ io.Reader, name string) (string, string, error) {
	if f.failWith != nil {
		return "", "", f.failWith
	}
	f.uploads++
	publicID := fmt.Sprintf("events/%s", name)
	return "https://res.cloudinary.test/" + publicID, publicID, nil
}

func (f *fakeImages) Destroy(_ context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

// sequenceCodes replays the given codes, then falls back to fresh ones.
func sequenceCodes(codes ...string) func() (string, error) {
	var mu sync.Mutex
	i := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if i < len(codes) {
			c := codes[i]
			i++
			return c, nil
		}
		i++
		return fmt.Sprintf("Zz%06s", lettersFor(i)), nil
	}
}

func lettersFor(n int) string {
	out := make([]byte, 6)
	for i := 5; i >= 0; i-- {
		out[i] = byte('a' + n%26)
		n /= 26
	}
	return string(out)
}
