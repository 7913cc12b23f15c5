package repository

import (
	"context"
	"event_ticketing/constants"
	"event_ticketing/model"
	"event_ticketing/utils"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *EventRepository) List(ctx context.Context, filter model.FilterEventInput) ([]model.Event, int64, error) {
	condition := r.db.WithContext(ctx).Model(&model.Event{})
	if filter.Category != "" {
		condition = condition.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		condition = condition.Where("status = ?", filter.Status)
	}

	var total int64
	if err := condition.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []model.Event
	err := utils.ApplyPagination(condition, filter.Limit, filter.Page).
		Order("starts_at asc").
		Find(&events).Error
	return events, total, err
}

func (r *EventRepository) Save(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// NextSeatSequence atomically bumps the event's seat counter and returns the new value.
func (r *EventRepository) NextSeatSequence(ctx context.Context, eventID string) (int64, error) {
	var event model.Event
	result := r.db.WithContext(ctx).Model(&event).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "seat_sequence"}}}).
		Where("id = ?", eventID).
		UpdateColumn("seat_sequence", gorm.Expr("seat_sequence + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return event.SeatSequence, nil
}

func (r *EventRepository) CloseEnded(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Event{}).
		Where("status = ? AND ends_at IS NOT NULL AND ends_at < ?", constants.EVENT_UPCOMING, now).
		Update("status", constants.EVENT_ENDED)
	return result.RowsAffected, result.Error
}
