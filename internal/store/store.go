package store

import (
	"context"

	"vendazap/internal/models"
	"vendazap/internal/repositories"

	"go.uber.org/zap"
)

// ===========================================================================
// Audit Store
// Thin facade over the log repositories. Recording is strictly
// best-effort: webhook handling never fails because an audit write did.
// When no database is configured the server uses the no-op store and
// stays fully stateless.
// ===========================================================================

// Store records bridge traffic for auditing
type Store interface {
	// RecordMessage saves one message crossing the bridge
	RecordMessage(ctx context.Context, log *models.MessageLog)

	// RecordPayment saves one payment request outcome
	RecordPayment(ctx context.Context, log *models.PaymentLog)

	// Enabled reports whether records are actually persisted
	Enabled() bool
}

// dbStore persists records through the repositories
type dbStore struct {
	messages repositories.MessageLogRepository
	payments repositories.PaymentLogRepository
	logger   *zap.Logger
}

// New creates a database-backed store
func New(
	messages repositories.MessageLogRepository,
	payments repositories.PaymentLogRepository,
	logger *zap.Logger,
) Store {
	return &dbStore{
		messages: messages,
		payments: payments,
		logger:   logger,
	}
}

// RecordMessage saves one message; failures are logged and dropped
func (s *dbStore) RecordMessage(ctx context.Context, log *models.MessageLog) {
	if err := s.messages.Create(ctx, log); err != nil {
		s.logger.Warn("failed to record message log",
			zap.String("direction", string(log.Direction)),
			zap.Error(err),
		)
	}
}

// RecordPayment saves one payment request; failures are logged and dropped
func (s *dbStore) RecordPayment(ctx context.Context, log *models.PaymentLog) {
	if err := s.payments.Create(ctx, log); err != nil {
		s.logger.Warn("failed to record payment log",
			zap.String("method", log.Method),
			zap.Error(err),
		)
	}
}

// Enabled reports persistence is active
func (s *dbStore) Enabled() bool {
	return true
}

// ===========================================================================
// No-op Store
// ===========================================================================

// noopStore drops all records
type noopStore struct{}

// NewNoop creates a store that records nothing
func NewNoop() Store {
	return &noopStore{}
}

func (n *noopStore) RecordMessage(ctx context.Context, log *models.MessageLog) {}

func (n *noopStore) RecordPayment(ctx context.Context, log *models.PaymentLog) {}

func (n *noopStore) Enabled() bool {
	return false
}
