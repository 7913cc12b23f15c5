package service

import (
	"context"
	"event_ticketing/constants"
	"event_ticketing/gateway"
	"event_ticketing/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// settledPasses returns the passes of a freshly settled payment.
func (f *fixture) settledPasses(t *testing.T, seats int) (*model.Event, []model.Attendee) {
	t.Helper()
	event, _, payment := f.seedPayment(t, seats)
	f.gateway.On("FetchCharge", mock.Anything, payment.Reference).
		Return(chargeStatus(payment.Reference, true, gateway.StatusSuccess), nil).Once()

	_, err := f.payments.VerifyPayment(context.Background(), payment.Reference)
	require.NoError(t, err)

	passes, err := f.payments.ListPasses(context.Background(), payment.Reference)
	require.NoError(t, err)
	return event, passes
}

func TestCheckIn_AdmitsOnce(t *testing.T) {
	f := newFixture()
	event, passes := f.settledPasses(t, 2)
	ctx := context.Background()

	admitted, err := f.checkIn.CheckIn(ctx, event.ID, passes[0].CheckInCode)
	require.NoError(t, err)
	assert.Equal(t, constants.CHECKED_IN_YES, admitted.CheckedIn)
	assert.NotNil(t, admitted.CheckedInAt)
	assert.Contains(t, f.publisher.types(), model.EventAttendeeCheckedIn)

	_, err = f.checkIn.CheckIn(ctx, event.ID, passes[0].CheckInCode)
	require.Error(t, err)
	assert.Equal(t, KindConflict, KindOf(err))

	// the other pass is unaffected
	other, err := f.checkIn.CheckIn(ctx, event.ID, passes[1].CheckInCode)
	require.NoError(t, err)
	assert.Equal(t, passes[1].ID, other.ID)
}

func TestCheckIn_UnknownCode(t *testing.T) {
	f := newFixture()
	event := f.db.addEvent("Open Mic", 0)

	_, err := f.checkIn.CheckIn(context.Background(), event.ID, "NoSuchCd")

	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Empty(t, f.db.attendees)
}

func TestCheckIn_CodeFromAnotherEvent(t *testing.T) {
	f := newFixture()
	_, passes := f.settledPasses(t, 1)
	elsewhere := f.db.addEvent("Different Night", 0)

	_, err := f.checkIn.CheckIn(context.Background(), elsewhere.ID, passes[0].CheckInCode)

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCheckIn_UnknownEvent(t *testing.T) {
	f := newFixture()

	_, err := f.checkIn.CheckIn(context.Background(), "missing", "AbcdEfgh")

	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListAttendees(t *testing.T) {
	f := newFixture()
	event, _ := f.settledPasses(t, 3)

	attendees, err := f.checkIn.ListAttendees(context.Background(), event.ID)

	require.NoError(t, err)
	assert.Len(t, attendees, 3)

	_, err = f.checkIn.ListAttendees(context.Background(), "missing")
	assert.Equal(t, KindNotFound, KindOf(err))
}
