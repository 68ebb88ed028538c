// Package sheets is the spreadsheet persistence boundary: records are
// appended as rows to Google Sheets, tasks are read back for reminder
// digests. Writes are append-only; duplicate submissions produce
// duplicate rows by design.
package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/charmbracelet/log"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ndhuy/chitieu/internal/types"
)

// Config identifies the spreadsheets the client writes to.
type Config struct {
	// CredentialsFile is a service account JSON key. Empty means
	// Application Default Credentials.
	CredentialsFile string
	// ExpenseSheetID is the spreadsheet holding the transaction ledger.
	ExpenseSheetID string
	// TaskSheetID is the spreadsheet holding the task list. Defaults to
	// ExpenseSheetID when empty.
	TaskSheetID string
}

// Client wraps the Sheets v4 service.
type Client struct {
	svc            *sheetsapi.Service
	logger         *log.Logger
	expenseSheetID string
	taskSheetID    string
}

const (
	ledgerRange = "A:K"
	taskRange   = "A:H"

	appendAttempts = 3
	appendDelay    = 500 * time.Millisecond
)

// New creates a Sheets client.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	taskSheetID := cfg.TaskSheetID
	if taskSheetID == "" {
		taskSheetID = cfg.ExpenseSheetID
	}

	return &Client{
		svc:            svc,
		logger:         logger,
		expenseSheetID: cfg.ExpenseSheetID,
		taskSheetID:    taskSheetID,
	}, nil
}

// AppendTransaction appends a transaction to the ledger. note carries
// the sender identity and lands in the Ghi chú column.
func (c *Client) AppendTransaction(ctx context.Context, rec types.TransactionRecord, note string, submittedAt time.Time) error {
	row := transactionRow(rec, note, submittedAt)
	if err := c.appendRow(ctx, c.expenseSheetID, ledgerRange, row); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	c.logger.Debug("Appended transaction", "category", rec.Category, "amount", rec.Amount, "type", rec.Type)
	return nil
}

// AppendTask assigns the next sequence number (row count + 1) and
// appends the task. The stored task is returned with its number set.
func (c *Client) AppendTask(ctx context.Context, task types.TaskRecord, startedAt time.Time) (types.TaskRecord, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.taskSheetID, taskRange).Context(ctx).Do()
	if err != nil {
		return task, fmt.Errorf("failed to read task sheet: %w", err)
	}
	task.SequenceNumber = len(resp.Values) + 1

	if err := c.appendRow(ctx, c.taskSheetID, taskRange, taskRow(task, startedAt)); err != nil {
		return task, fmt.Errorf("failed to append task: %w", err)
	}
	c.logger.Debug("Appended task", "name", task.Name, "seq", task.SequenceNumber)
	return task, nil
}

// ListTasks reads all tasks back. Rows without a name are skipped, as
// is the header row.
func (c *Client) ListTasks(ctx context.Context) ([]TaskRow, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.taskSheetID, taskRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read task sheet: %w", err)
	}

	var tasks []TaskRow
	for i, row := range resp.Values {
		if i == 0 {
			continue
		}
		t := taskFromRow(row)
		if t.Name == "" {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// ListTransactions reads the raw ledger rows back for summarization.
func (c *Client) ListTransactions(ctx context.Context) ([]LedgerRow, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.expenseSheetID, ledgerRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read expense sheet: %w", err)
	}

	var rows []LedgerRow
	for i, row := range resp.Values {
		if i == 0 {
			continue
		}
		rows = append(rows, ledgerFromRow(row))
	}
	return rows, nil
}

// appendRow appends one row, retrying transient API failures.
func (c *Client) appendRow(ctx context.Context, sheetID, readRange string, row []interface{}) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	return retry.Do(
		func() error {
			_, err := c.svc.Spreadsheets.Values.Append(sheetID, readRange, vr).
				ValueInputOption("USER_ENTERED").
				InsertDataOption("INSERT_ROWS").
				Context(ctx).Do()
			return err
		},
		retry.Context(ctx),
		retry.Attempts(appendAttempts),
		retry.Delay(appendDelay),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("Retrying sheet append", "attempt", n+1, "error", err)
		}),
	)
}
