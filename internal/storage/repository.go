package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/David200308/expense-web/internal/analysis"
	"github.com/David200308/expense-web/internal/core"

	_ "modernc.org/sqlite"
)

// ErrRecordNotFound is returned when a lookup matches no expense record
// owned by the requesting user.
var ErrRecordNotFound = errors.New("expense record not found")

const recordColumns = "id, owner_id, amount, description, category, occurred_on"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateRecord inserts a new expense record and resets its sync state so the
// backup worker picks it up.
func (r *SQLiteRepository) CreateRecord(ctx context.Context, rec core.ExpenseRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, owner_id, amount, description, category, occurred_on, synced, sync_attempts)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0)`,
		rec.ID.String(),
		rec.OwnerID.String(),
		rec.Amount.String(),
		rec.Description,
		rec.Category,
		rec.OccurredOn.Format(core.DateLayout),
	)
	if err != nil {
		return fmt.Errorf("create expense record: %w", err)
	}

	slog.InfoContext(ctx, "Expense record saved",
		"id", rec.ID,
		"owner_id", rec.OwnerID,
		"category", rec.Category,
		"amount", rec.Amount)

	return nil
}

// GetRecord loads a single record scoped to its owner.
func (r *SQLiteRepository) GetRecord(ctx context.Context, id, ownerID uuid.UUID) (core.ExpenseRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM expenses
		WHERE id = ? AND owner_id = ?`,
		id.String(), ownerID.String(),
	)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ExpenseRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("get expense record: %w", err)
	}
	return rec, nil
}

// ListRecords returns all records for an owner, newest first.
func (r *SQLiteRepository) ListRecords(ctx context.Context, ownerID uuid.UUID) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM expenses
		WHERE owner_id = ?
		ORDER BY occurred_on DESC, id DESC`,
		ownerID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list expense records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// UpdateRecord persists changes to an existing record and marks it pending
// sync again.
func (r *SQLiteRepository) UpdateRecord(ctx context.Context, rec core.ExpenseRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses
		SET amount = ?, description = ?, category = ?, occurred_on = ?,
		    updated_at = datetime('now'), synced = 0, sync_attempts = 0
		WHERE id = ? AND owner_id = ?`,
		rec.Amount.String(),
		rec.Description,
		rec.Category,
		rec.OccurredOn.Format(core.DateLayout),
		rec.ID.String(),
		rec.OwnerID.String(),
	)
	if err != nil {
		return fmt.Errorf("update expense record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update expense record rows affected: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	slog.InfoContext(ctx, "Expense record updated", "id", rec.ID, "owner_id", rec.OwnerID)
	return nil
}

func (r *SQLiteRepository) DeleteRecord(ctx context.Context, id, ownerID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM expenses WHERE id = ? AND owner_id = ?`,
		id.String(), ownerID.String(),
	)
	if err != nil {
		return fmt.Errorf("delete expense record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense record rows affected: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	slog.InfoContext(ctx, "Expense record deleted", "id", id, "owner_id", ownerID)
	return nil
}

// FindRecords implements analysis.RecordFinder. The interval bounds are
// inclusive; ordering is deterministic so report output is stable.
func (r *SQLiteRepository) FindRecords(ctx context.Context, ownerID uuid.UUID, interval analysis.Interval) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM expenses
		WHERE owner_id = ? AND occurred_on >= ? AND occurred_on <= ?
		ORDER BY occurred_on ASC, id ASC`,
		ownerID.String(),
		interval.Start.Format(core.DateLayout),
		interval.End.Format(core.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("find expense records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// GetPendingSyncRecords returns records awaiting backup, oldest first.
func (r *SQLiteRepository) GetPendingSyncRecords(ctx context.Context, limit int) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM expenses
		WHERE synced = 0
		ORDER BY created_at ASC, id ASC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get pending sync records: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// MarkSynced marks a record as successfully backed up.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET synced = 1, updated_at = datetime('now') WHERE id = ?`,
		id.String(),
	)
	if err != nil {
		return fmt.Errorf("mark record synced: %w", err)
	}

	slog.InfoContext(ctx, "Expense record marked as synced", "id", id)
	return nil
}

// MarkSyncError increments the sync attempt counter after a failed backup.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET sync_attempts = sync_attempts + 1, updated_at = datetime('now') WHERE id = ?`,
		id.String(),
	)
	if err != nil {
		return fmt.Errorf("mark record sync error: %w", err)
	}

	slog.WarnContext(ctx, "Expense record marked with sync error", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord tolerates malformed stored values: an unparseable amount becomes
// zero and an unparseable date becomes the zero time, mirroring how the
// analysis engine treats dirty data.
func scanRecord(row rowScanner) (core.ExpenseRecord, error) {
	var (
		rec                      core.ExpenseRecord
		idStr, ownerStr          string
		amountStr, occurredOnStr string
	)

	if err := row.Scan(&idStr, &ownerStr, &amountStr, &rec.Description, &rec.Category, &occurredOnStr); err != nil {
		return core.ExpenseRecord{}, err
	}

	if id, err := uuid.Parse(idStr); err == nil {
		rec.ID = id
	}
	if owner, err := uuid.Parse(ownerStr); err == nil {
		rec.OwnerID = owner
	}
	rec.Amount = core.CoerceAmount(amountStr)
	if t, err := time.Parse(core.DateLayout, occurredOnStr); err == nil {
		rec.OccurredOn = t
	}

	return rec, nil
}

func collectRecords(rows *sql.Rows) ([]core.ExpenseRecord, error) {
	records := []core.ExpenseRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense records: %w", err)
	}
	return records, nil
}
