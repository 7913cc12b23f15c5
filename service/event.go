package service

import (
	"context"
	"event_ticketing/constants"
	"event_ticketing/helper"
	"event_ticketing/model"
	"io"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/jinzhu/copier"
)

type EventService struct {
	events EventStore
	images ImageStore
	now    func() time.Time
}

func NewEventService(events EventStore, images ImageStore) *EventService {
	return &EventService{events: events, images: images, now: time.Now}
}

func (s *EventService) CreateEvent(ctx context.Context, principal Principal, input model.CreateEventInput) (*model.Event, error) {
	if input.EndsAt != nil && input.EndsAt.Before(input.StartsAt) {
		return nil, BadRequest(constants.ERROR_INPUT, nil)
	}

	slug, err := helper.GenerateUniqueSlug(ctx, input.Title, s.events.SlugExists)
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}

	event := &model.Event{
		Slug:        slug,
		Title:       input.Title,
		Category:    input.Category,
		Description: input.Description,
		Venue:       input.Venue,
		Price:       input.Price,
		Capacity:    input.Capacity,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Status:      constants.EVENT_UPCOMING,
		OrganizerId: principal.AccountID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, constants.EVENT_NOT_FOUND)
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, filter model.FilterEventInput) (*model.ResponseCustom, error) {
	events, total, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	return &model.ResponseCustom{
		Rows:       events,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: total,
	}, nil
}

// Authorize loads the event and checks that principal may manage it.
func (s *EventService) Authorize(ctx context.Context, principal Principal, id string) (*model.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if principal.Role != constants.ROLE_ADMIN && event.OrganizerId != principal.AccountID {
		return nil, Forbidden(constants.NOT_PERMISSION, nil)
	}
	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, principal Principal, id string, input model.EditEventInput) (*model.Event, error) {
	event, err := s.Authorize(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if err := copier.CopyWithOption(event, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	if input.Price != nil {
		event.Price = *input.Price
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = input.EndsAt
	}
	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		return nil, BadRequest(constants.ERROR_INPUT, nil)
	}

	if err := s.events.Save(ctx, event); err != nil {
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, principal Principal, id string) error {
	event, err := s.Authorize(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, event.ID); err != nil {
		return storeError(err, constants.EVENT_NOT_FOUND)
	}
	if event.ImagePublicId != "" && s.images != nil {
		if err := s.images.Destroy(ctx, event.ImagePublicId); err != nil {
			log.Warnf("destroy image %s of deleted event %s: %v", event.ImagePublicId, event.ID, err)
		}
	}
	return nil
}

// UploadImage replaces the event image; the previous upload is destroyed afterwards.
func (s *EventService) UploadImage(ctx context.Context, principal Principal, id string, file io.Reader) (*model.Event, error) {
	event, err := s.Authorize(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if s.images == nil {
		return nil, Upstream(constants.IMAGE_UPLOAD_FAILED, nil)
	}

	url, publicID, err := s.images.Upload(ctx, file, event.Slug+"-"+s.now().Format("20060102150405"))
	if err != nil {
		return nil, Upstream(constants.IMAGE_UPLOAD_FAILED, err)
	}

	previous := event.ImagePublicId
	event.ImageUrl = url
	event.ImagePublicId = publicID
	if err := s.events.Save(ctx, event); err != nil {
		if derr := s.images.Destroy(ctx, publicID); derr != nil {
			log.Warnf("destroy orphaned image %s: %v", publicID, derr)
		}
		return nil, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}

	if previous != "" && previous != publicID {
		if err := s.images.Destroy(ctx, previous); err != nil {
			log.Warnf("destroy previous image %s: %v", previous, err)
		}
	}
	return event, nil
}

// CloseEndedEvents marks events whose end time has passed as Ended.
func (s *EventService) CloseEndedEvents(ctx context.Context) (int64, error) {
	n, err := s.events.CloseEnded(ctx, s.now())
	if err != nil {
		return 0, Internal(constants.ERROR_INTERNAL_ERROR, err)
	}
	return n, nil
}
