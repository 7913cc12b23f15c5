package repository

import (
	"context"
	"event_ticketing/constants"
	"event_ticketing/model"
	"time"

	"gorm.io/gorm"
)

type AttendeeRepository struct {
	db *gorm.DB
}

func NewAttendeeRepository(db *gorm.DB) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

func (r *AttendeeRepository) FindByCode(ctx context.Context, eventID, code string) (*model.Attendee, error) {
	var attendee model.Attendee
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND check_in_code = ?", eventID, code).
		First(&attendee).Error
	if err != nil {
		return nil, err
	}
	return &attendee, nil
}

// MarkCheckedIn flips the flag only if it is still "No".
func (r *AttendeeRepository) MarkCheckedIn(ctx context.Context, id string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Attendee{}).
		Where("id = ? AND checked_in = ?", id, constants.CHECKED_IN_NO).
		Updates(map[string]any{
			"checked_in":    constants.CHECKED_IN_YES,
			"checked_in_at": at,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *AttendeeRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Attendee, error) {
	var attendees []model.Attendee
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("table_number asc, seat_number asc").
		Find(&attendees).Error
	return attendees, err
}

func (r *AttendeeRepository) ListByPayment(ctx context.Context, paymentID string) ([]model.Attendee, error) {
	var attendees []model.Attendee
	err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("table_number asc, seat_number asc").
		Find(&attendees).Error
	return attendees, err
}
