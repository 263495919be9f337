package sheets

import (
	"context"

	"github.com/google/uuid"

	"github.com/David200308/expense-web/internal/core"
)

// Ports for outbound backup adapters.
type (
	// RecordAppender mirrors an expense record into the backup spreadsheet.
	RecordAppender interface {
		AppendRecord(ctx context.Context, rec core.ExpenseRecord) error
	}

	// RecordRemover removes a previously mirrored record from the backup.
	RecordRemover interface {
		RemoveRecord(ctx context.Context, id uuid.UUID) error
	}
)
