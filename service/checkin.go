package service

import (
	"context"
	"errors"
	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/monitoring"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type CheckInService struct {
	events    EventStore
	attendees AttendeeStore
	publisher Publisher
	now       func() time.Time
}

func NewCheckInService(events EventStore, attendees AttendeeStore, publisher Publisher) *CheckInService {
	return &CheckInService{
		events:    events,
		attendees: attendees,
		publisher: publisher,
		now:       time.Now,
	}
}

// CheckIn admits the pass holding code for the event. Each pass admits once.
func (s *CheckInService) CheckIn(ctx context.Context, eventID, code string) (*model.Attendee, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, storeError(err, constants.EVENT_NOT_FOUND)
	}

	attendee, err := s.attendees.FindByCode(ctx, eventID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			monitoring.RecordCheckIn("unknown")
		}
		return nil, storeError(err, constants.CHECK_IN_CODE_UNKNOWN)
	}
	if attendee.CheckedIn == constants.CHECKED_IN_YES {
		monitoring.RecordCheckIn("duplicate")
		return nil, Conflict(constants.ALREADY_CHECKED_IN, nil)
	}

	at := s.now()
	ok, err := s.attendees.MarkCheckedIn(ctx, attendee.ID, at)
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	if !ok {
		monitoring.RecordCheckIn("duplicate")
		return nil, Conflict(constants.ALREADY_CHECKED_IN, nil)
	}

	attendee.CheckedIn = constants.CHECKED_IN_YES
	attendee.CheckedInAt = &at
	monitoring.RecordCheckIn("admitted")

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, model.DomainEvent{
			Type:       model.EventAttendeeCheckedIn,
			EventId:    eventID,
			AttendeeId: attendee.ID,
			OccurredAt: at,
		})
		if err != nil {
			log.Warnf("publish check-in for attendee %s: %v", attendee.ID, err)
		}
	}

	return attendee, nil
}

func (s *CheckInService) ListAttendees(ctx context.Context, eventID string) ([]model.Attendee, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, storeError(err, constants.EVENT_NOT_FOUND)
	}
	attendees, err := s.attendees.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	return attendees, nil
}
