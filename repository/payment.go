package repository

import (
	"context"
	"event_ticketing/model"
	"time"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *PaymentRepository) FindByReference(ctx context.Context, reference string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).First(&payment, "reference = ?", reference).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.PaymentPending, cutoff).
		Order("created_at asc").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}

// SettleSuccess moves a Pending payment to Successful, credits the sold counters and
// stores the issued passes with their reserved codes in one transaction. It reports false when the payment was
// no longer Pending, in which case nothing is written.
func (r *PaymentRepository) SettleSuccess(ctx context.Context, payment *model.Payment, passes []model.Attendee, paidAt time.Time) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Payment{}).
			Where("reference = ? AND status = ?", payment.Reference, model.PaymentPending).
			Updates(map[string]any{
				"status":       model.PaymentSuccessful,
				"payment_date": paidAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&model.Event{}).
			Where("id = ?", payment.EventId).
			UpdateColumn("sold_ticket", gorm.Expr("sold_ticket + ?", payment.TotalTicket)).Error; err != nil {
			return err
		}

		if len(payment.TicketIds) > 0 {
			if err := tx.Model(&model.Ticket{}).
				Where("id IN ?", []string(payment.TicketIds)).
				UpdateColumn("sold_ticket", gorm.Expr("sold_ticket + ?", payment.TotalTicket)).Error; err != nil {
				return err
			}
		}

		if len(passes) > 0 {
			if err := tx.Create(&passes).Error; err != nil {
				return err
			}
			codes := make([]model.IssuedCode, 0, len(passes))
			for _, pass := range passes {
				codes = append(codes, model.IssuedCode{
					Code:      pass.CheckInCode,
					OwnerType: model.CodeOwnerAttendee,
					OwnerId:   pass.ID,
				})
			}
			if err := tx.Create(&codes).Error; err != nil {
				return err
			}
		}

		applied = true
		return nil
	})
	return applied, err
}

// SettleFailure moves a Pending payment to Failed; false when it was already settled.
func (r *PaymentRepository) SettleFailure(ctx context.Context, reference string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("reference = ? AND status = ?", reference, model.PaymentPending).
		Update("status", model.PaymentFailed)
	return result.RowsAffected > 0, result.Error
}
