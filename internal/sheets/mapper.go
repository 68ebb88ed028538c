package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ndhuy/chitieu/internal/types"
)

// Column layouts mirror the spreadsheet headers the bot writes to.
var (
	transactionHeader = []string{
		"Ngày", "Danh mục", "Mô tả", "Số tiền", "Loại", "Link hóa đơn",
		"Thời gian", "Danh mục phụ", "Số lượng", "Phương thức thanh toán", "Ghi chú",
	}
	taskHeader = []string{
		"STT", "Đầu Việc", "Mô Tả", "Thời Gian Bắt Đầu",
		"Thời Gian Kết Thúc (Deadline)", "Tiến Độ (%)", "Trạng Thái", "Ghi Chú / Vướng Mắc:",
	}
)

const dateLayout = "02/01/2006"

// transactionRow maps a record to its ledger row. note carries the
// sender identity ("username (id)"), submittedAt the receipt time.
func transactionRow(rec types.TransactionRecord, note string, submittedAt time.Time) []interface{} {
	return []interface{}{
		rec.OccurredOn.Format(dateLayout),
		rec.Category,
		rec.Description,
		rec.Amount,
		string(rec.Type),
		rec.ReceiptURL,
		submittedAt.Format(time.RFC3339),
		rec.Subcategory,
		rec.Quantity,
		string(rec.PaymentMethod),
		note,
	}
}

// taskRow maps a task to its sheet row. The sequence number must
// already be assigned.
func taskRow(task types.TaskRecord, startedAt time.Time) []interface{} {
	return []interface{}{
		task.SequenceNumber,
		task.Name,
		task.Description,
		startedAt.Format(dateLayout),
		task.Deadline,
		0,
		task.Status,
		task.Notes,
	}
}

// TaskRow is a task as read back from the sheet, including the
// free-text progress column that only exists at the storage boundary.
type TaskRow struct {
	types.TaskRecord
	Progress string
}

// taskFromRow maps one sheet row back to a task. Rows with an empty
// name are skipped by the caller.
func taskFromRow(row []interface{}) TaskRow {
	t := TaskRow{}
	t.SequenceNumber, _ = strconv.Atoi(cell(row, 0))
	t.Name = strings.TrimSpace(cell(row, 1))
	t.Description = cell(row, 2)
	t.Deadline = cell(row, 4)
	t.Progress = cell(row, 5)
	t.Status = cell(row, 6)
	t.Notes = cell(row, 7)
	return t
}

// LedgerRow is one transaction row as read back from the sheet, kept
// as strings; summarization parses what it needs.
type LedgerRow struct {
	Date     string
	Category string
	Amount   string
	Type     string
}

func ledgerFromRow(row []interface{}) LedgerRow {
	return LedgerRow{
		Date:     cell(row, 0),
		Category: cell(row, 1),
		Amount:   cell(row, 3),
		Type:     cell(row, 4),
	}
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprintf("%v", row[i])
}
