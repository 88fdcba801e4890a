package repositories

import (
	"context"

	"vendazap/internal/models"

	"gorm.io/gorm"
)

// ===========================================================================
// Message Log Repository
// ===========================================================================

// FindOptions holds pagination for list queries
type FindOptions struct {
	Page  int
	Limit int
}

// SetDefaults fills in sane pagination defaults
func (o *FindOptions) SetDefaults() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit < 1 || o.Limit > 100 {
		o.Limit = 20
	}
}

// Offset returns the SQL offset for the current page
func (o *FindOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// MessageLogRepository persists and queries message audit records
type MessageLogRepository interface {
	// Create inserts a message log record
	Create(ctx context.Context, log *models.MessageLog) error

	// List returns records newest first, with the total count
	List(ctx context.Context, opts FindOptions) ([]models.MessageLog, int64, error)
}

// messageLogRepo implements MessageLogRepository with GORM
type messageLogRepo struct {
	db *gorm.DB
}

// NewMessageLogRepository creates a MessageLogRepository
func NewMessageLogRepository(db *gorm.DB) MessageLogRepository {
	return &messageLogRepo{db: db}
}

// Create inserts a message log record
func (r *messageLogRepo) Create(ctx context.Context, log *models.MessageLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// List returns records newest first
func (r *messageLogRepo) List(ctx context.Context, opts FindOptions) ([]models.MessageLog, int64, error) {
	opts.SetDefaults()

	var logs []models.MessageLog
	var total int64

	query := r.db.WithContext(ctx).Model(&models.MessageLog{})

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
