package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/David200308/expense-web/internal/amqp"
	"github.com/David200308/expense-web/internal/core"
)

// RecordStore is the persistence port the service writes through.
type RecordStore interface {
	CreateRecord(ctx context.Context, rec core.ExpenseRecord) error
	GetRecord(ctx context.Context, id, ownerID uuid.UUID) (core.ExpenseRecord, error)
	ListRecords(ctx context.Context, ownerID uuid.UUID) ([]core.ExpenseRecord, error)
	UpdateRecord(ctx context.Context, rec core.ExpenseRecord) error
	DeleteRecord(ctx context.Context, id, ownerID uuid.UUID) error
	Close() error
}

// ChangePublisher notifies the backup worker about record changes.
type ChangePublisher interface {
	PublishRecordChange(ctx context.Context, msg *amqp.RecordChangeMessage) error
	Close() error
}

// CreateExpenseInput carries the fields needed to record a new expense.
type CreateExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	Category    string
	OccurredOn  time.Time
}

// UpdateExpenseInput carries a partial update; nil fields keep their current value.
type UpdateExpenseInput struct {
	Amount      *decimal.Decimal
	Description *string
	Category    *string
	OccurredOn  *time.Time
}

// ExpenseService orchestrates expense operations across SQLite and AMQP.
// Writes go to storage first; change notifications are best-effort and never
// fail the request.
type ExpenseService struct {
	store     RecordStore
	publisher ChangePublisher
}

func NewExpenseService(store RecordStore, publisher ChangePublisher) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
	}
}

// CreateExpense saves an expense locally and publishes a sync message.
func (s *ExpenseService) CreateExpense(ctx context.Context, ownerID uuid.UUID, in CreateExpenseInput) (core.ExpenseRecord, error) {
	rec := core.ExpenseRecord{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		OccurredOn:  in.OccurredOn,
	}

	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("validate expense: %w", err)
	}

	if err := s.store.CreateRecord(ctx, rec); err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("save expense: %w", err)
	}

	s.publishSync(ctx, rec.ID, rec.OwnerID)

	return rec, nil
}

// GetExpense returns a single expense scoped to its owner.
func (s *ExpenseService) GetExpense(ctx context.Context, id, ownerID uuid.UUID) (core.ExpenseRecord, error) {
	return s.store.GetRecord(ctx, id, ownerID)
}

// ListExpenses returns all expenses for an owner, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, ownerID uuid.UUID) ([]core.ExpenseRecord, error) {
	return s.store.ListRecords(ctx, ownerID)
}

// UpdateExpense applies a partial update to an existing expense and publishes
// a sync message.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id, ownerID uuid.UUID, in UpdateExpenseInput) (core.ExpenseRecord, error) {
	rec, err := s.store.GetRecord(ctx, id, ownerID)
	if err != nil {
		return core.ExpenseRecord{}, err
	}

	if in.Amount != nil {
		rec.Amount = *in.Amount
	}
	if in.Description != nil {
		rec.Description = *in.Description
	}
	if in.Category != nil {
		rec.Category = *in.Category
	}
	if in.OccurredOn != nil {
		rec.OccurredOn = *in.OccurredOn
	}

	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("validate expense: %w", err)
	}

	if err := s.store.UpdateRecord(ctx, rec); err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("update expense: %w", err)
	}

	s.publishSync(ctx, rec.ID, rec.OwnerID)

	return rec, nil
}

// DeleteExpense removes an expense locally and publishes a delete message.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.store.DeleteRecord(ctx, id, ownerID); err != nil {
		return err
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete message")
		return nil
	}

	if err := s.publisher.PublishRecordChange(ctx, amqp.NewRecordDeleteMessage(id)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
		// Don't fail the request - expense is deleted locally
	}

	return nil
}

func (s *ExpenseService) publishSync(ctx context.Context, id, ownerID uuid.UUID) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return
	}

	if err := s.publisher.PublishRecordChange(ctx, amqp.NewRecordSyncMessage(id, ownerID)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
		// Don't fail the request - expense is saved locally
	}
}

// Close closes both storage and AMQP connections.
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}

	return nil
}
