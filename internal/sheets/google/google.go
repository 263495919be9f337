package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/David200308/expense-web/internal/core"
	ports "github.com/David200308/expense-web/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client mirrors expense records into a Google Sheets backup spreadsheet.
// Each record occupies one row; column A holds the record ID so rows can be
// located again for removal.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Ensure interface conformance
var (
	_ ports.RecordAppender = (*Client)(nil)
	_ ports.RecordRemover  = (*Client)(nil)
)

// New creates a Sheets client for the given spreadsheet. Credentials are
// resolved from the environment: GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheetName string) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if strings.TrimSpace(sheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// AppendRecord writes one row for the record at the bottom of the sheet. If a
// row for the record already exists it is updated in place, so re-delivered
// sync messages stay idempotent.
func (c *Client) AppendRecord(ctx context.Context, rec core.ExpenseRecord) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	ids, err := c.readIDColumn(ctx)
	if err != nil {
		return err
	}

	row := recordRow(rec)
	targetRow := rowIndexOf(ids, rec.ID.String())
	if targetRow < 0 {
		targetRow = len(ids) + 1
	}

	rng := fmt.Sprintf("%s!A%d:F%d", c.sheetName, targetRow, targetRow)
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update row in sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Record mirrored to backup sheet",
		"id", rec.ID,
		"row", targetRow,
		"sheet", c.sheetName)

	return nil
}

// RemoveRecord clears the row holding the record, if present. A missing row
// is not an error; the record may never have been mirrored.
func (c *Client) RemoveRecord(ctx context.Context, id uuid.UUID) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	ids, err := c.readIDColumn(ctx)
	if err != nil {
		return err
	}

	targetRow := rowIndexOf(ids, id.String())
	if targetRow < 0 {
		slog.WarnContext(ctx, "Record not found in backup sheet, nothing to remove", "id", id)
		return nil
	}

	rng := fmt.Sprintf("%s!A%d:F%d", c.sheetName, targetRow, targetRow)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear row in sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Record removed from backup sheet",
		"id", id,
		"row", targetRow,
		"sheet", c.sheetName)

	return nil
}

func (c *Client) readIDColumn(ctx context.Context) ([][]any, error) {
	rng := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read id column of sheet %s: %w", c.sheetName, err)
	}
	return resp.Values, nil
}

// recordRow maps a record to its sheet columns:
// A=id, B=owner, C=date, D=category, E=description, F=amount.
func recordRow(rec core.ExpenseRecord) []any {
	return []any{
		rec.ID.String(),
		rec.OwnerID.String(),
		rec.OccurredOn.Format(core.DateLayout),
		rec.Category,
		rec.Description,
		rec.Amount.String(),
	}
}

// rowIndexOf returns the 1-based sheet row whose first cell equals id, or -1.
func rowIndexOf(values [][]any, id string) int {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		cell, ok := row[0].(string)
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(cell), id) {
			return i + 1
		}
	}
	return -1
}
