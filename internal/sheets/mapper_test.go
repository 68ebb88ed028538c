package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhuy/chitieu/internal/types"
)

func TestTransactionRow(t *testing.T) {
	rec := types.TransactionRecord{
		Amount:        45_000,
		Type:          types.TransactionTypeExpense,
		Category:      "Nhà hàng",
		Subcategory:   "Ăn trưa",
		PaymentMethod: types.PaymentMethodCash,
		Quantity:      1,
		Description:   "Ăn trưa",
		OccurredOn:    time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC),
		ReceiptURL:    "https://storage.googleapis.com/receipts/2024_07/abc.jpg",
	}
	submitted := time.Date(2024, 7, 15, 10, 31, 2, 0, time.UTC)

	row := transactionRow(rec, "huy (123)", submitted)

	require.Len(t, row, len(transactionHeader))
	assert.Equal(t, "15/07/2024", row[0])
	assert.Equal(t, "Nhà hàng", row[1])
	assert.Equal(t, "Ăn trưa", row[2])
	assert.Equal(t, int64(45_000), row[3])
	assert.Equal(t, "expense", row[4])
	assert.Equal(t, rec.ReceiptURL, row[5])
	assert.Equal(t, "2024-07-15T10:31:02Z", row[6])
	assert.Equal(t, "Ăn trưa", row[7])
	assert.Equal(t, 1, row[8])
	assert.Equal(t, "Tiền mặt", row[9])
	assert.Equal(t, "huy (123)", row[10])
}

func TestTaskRowRoundTrip(t *testing.T) {
	task := types.TaskRecord{
		SequenceNumber: 7,
		Name:           "Họp team",
		Description:    "review sprint",
		Deadline:       "10/6",
		Status:         "Đang thực hiện",
		Notes:          "phòng A3",
	}
	started := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	row := taskRow(task, started)
	require.Len(t, row, len(taskHeader))
	assert.Equal(t, "01/06/2024", row[3])

	got := taskFromRow(row)
	assert.Equal(t, task.SequenceNumber, got.SequenceNumber)
	assert.Equal(t, task.Name, got.Name)
	assert.Equal(t, task.Description, got.Description)
	assert.Equal(t, task.Deadline, got.Deadline)
	assert.Equal(t, task.Status, got.Status)
	assert.Equal(t, task.Notes, got.Notes)
	assert.Equal(t, "0", got.Progress)
}

func TestTaskFromRowShortAndDirtyRows(t *testing.T) {
	t.Run("short_row", func(t *testing.T) {
		got := taskFromRow([]interface{}{"3", "Gọi khách"})
		assert.Equal(t, 3, got.SequenceNumber)
		assert.Equal(t, "Gọi khách", got.Name)
		assert.Empty(t, got.Status)
	})

	t.Run("whitespace_name_trimmed", func(t *testing.T) {
		got := taskFromRow([]interface{}{"1", "  Họp team  "})
		assert.Equal(t, "Họp team", got.Name)
	})

	t.Run("nil_cells", func(t *testing.T) {
		got := taskFromRow([]interface{}{nil, nil, nil, nil, nil, nil, nil, nil})
		assert.Zero(t, got.SequenceNumber)
		assert.Empty(t, got.Name)
	})
}

func TestLedgerFromRow(t *testing.T) {
	row := []interface{}{"15/07/2024", "Nhà hàng", "Ăn trưa", "45000", "expense", "", "", "Ăn trưa", "1", "Tiền mặt", ""}

	got := ledgerFromRow(row)
	assert.Equal(t, "15/07/2024", got.Date)
	assert.Equal(t, "Nhà hàng", got.Category)
	assert.Equal(t, "45000", got.Amount)
	assert.Equal(t, "expense", got.Type)
}
