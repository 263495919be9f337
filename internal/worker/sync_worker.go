package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/David200308/expense-web/internal/amqp"
	"github.com/David200308/expense-web/internal/core"
	"github.com/David200308/expense-web/internal/sheets"
	"github.com/David200308/expense-web/internal/storage"
)

// RecordSource is the storage surface the worker needs to drive the backup.
type RecordSource interface {
	GetRecord(ctx context.Context, id, ownerID uuid.UUID) (core.ExpenseRecord, error)
	GetPendingSyncRecords(ctx context.Context, limit int) ([]core.ExpenseRecord, error)
	MarkSynced(ctx context.Context, id uuid.UUID) error
	MarkSyncError(ctx context.Context, id uuid.UUID) error
}

// SyncWorker mirrors expense records from SQLite into the Google Sheets backup.
type SyncWorker struct {
	storage   RecordSource
	appender  sheets.RecordAppender
	remover   sheets.RecordRemover
	batchSize int
}

func NewSyncWorker(storage RecordSource, appender sheets.RecordAppender, remover sheets.RecordRemover, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		appender:  appender,
		remover:   remover,
		batchSize: batchSize,
	}
}

// HandleMessage dispatches a record change message to the matching handler.
// It is the handler passed to the AMQP consume loop.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	switch msg.Action {
	case amqp.ActionSync:
		return w.HandleSyncMessage(ctx, msg)
	case amqp.ActionDelete:
		return w.HandleDeleteMessage(ctx, msg)
	default:
		slog.WarnContext(ctx, "Unknown message action, dropping",
			"action", msg.Action,
			"id", msg.ID)
		return nil
	}
}

// HandleSyncMessage mirrors a created or updated record to the backup sheet.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	rec, err := w.storage.GetRecord(ctx, msg.ID, msg.OwnerID)
	if errors.Is(err, storage.ErrRecordNotFound) {
		// Record was deleted before the sync message was consumed. The
		// delete message will clean up the backup.
		slog.WarnContext(ctx, "Record no longer exists, skipping sync", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get record from storage: %w", err)
	}

	if err := w.syncRecord(ctx, rec); err != nil {
		return fmt.Errorf("sync record to sheets: %w", err)
	}

	return nil
}

// HandleDeleteMessage removes a deleted record from the backup sheet.
func (w *SyncWorker) HandleDeleteMessage(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	slog.InfoContext(ctx, "Processing delete message", "id", msg.ID)

	if w.remover == nil {
		slog.WarnContext(ctx, "No record remover configured, skipping backup deletion",
			"id", msg.ID)
		return nil
	}

	if err := w.remover.RemoveRecord(ctx, msg.ID); err != nil {
		return fmt.Errorf("remove record from backup: %w", err)
	}

	slog.InfoContext(ctx, "Record removed from backup", "id", msg.ID)
	return nil
}

// ProcessPendingRecords mirrors records that were missed by the message flow.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingRecords(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncRecords(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending records: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending records", "count", len(pending))

	for _, rec := range pending {
		if err := w.syncRecord(ctx, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending record", "id", rec.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck mirrors any backlog of pending records at worker startup.
// This recovers from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	// Get a larger batch for startup check
	pending, err := w.storage.GetPendingSyncRecords(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending records for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending records found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending records on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, rec := range pending {
		if err := w.syncRecord(ctx, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to sync record during startup",
				"id", rec.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) syncRecord(ctx context.Context, rec core.ExpenseRecord) error {
	if w.appender == nil {
		slog.WarnContext(ctx, "No record appender configured, skipping sync", "id", rec.ID)
		return nil
	}

	if err := w.appender.AppendRecord(ctx, rec); err != nil {
		if markErr := w.storage.MarkSyncError(ctx, rec.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", rec.ID, "error", markErr)
		}
		return fmt.Errorf("append record: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, rec.ID); err != nil {
		return fmt.Errorf("mark record synced: %w", err)
	}

	return nil
}
