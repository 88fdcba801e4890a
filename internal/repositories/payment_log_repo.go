package repositories

import (
	"context"

	"vendazap/internal/models"

	"gorm.io/gorm"
)

// ===========================================================================
// Payment Log Repository
// ===========================================================================

// PaymentLogRepository persists and queries payment audit records
type PaymentLogRepository interface {
	// Create inserts a payment log record
	Create(ctx context.Context, log *models.PaymentLog) error

	// List returns records newest first, with the total count
	List(ctx context.Context, opts FindOptions) ([]models.PaymentLog, int64, error)
}

// paymentLogRepo implements PaymentLogRepository with GORM
type paymentLogRepo struct {
	db *gorm.DB
}

// NewPaymentLogRepository creates a PaymentLogRepository
func NewPaymentLogRepository(db *gorm.DB) PaymentLogRepository {
	return &paymentLogRepo{db: db}
}

// Create inserts a payment log record
func (r *paymentLogRepo) Create(ctx context.Context, log *models.PaymentLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// List returns records newest first
func (r *paymentLogRepo) List(ctx context.Context, opts FindOptions) ([]models.PaymentLog, int64, error) {
	opts.SetDefaults()

	var logs []models.PaymentLog
	var total int64

	query := r.db.WithContext(ctx).Model(&models.PaymentLog{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at desc").
		Offset(opts.Offset()).
		Limit(opts.Limit).
		Find(&logs).Error

	return logs, total, err
}
