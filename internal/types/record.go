package types

import "time"

// TransactionType represents the direction of money flow
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// PaymentMethod represents how an expense was paid
type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "Chuyển khoản"
	PaymentMethodCash     PaymentMethod = "Tiền mặt"
)

// TransactionRecord is the structured result of parsing a free-text
// expense or income message. Amount is in whole VND after unit
// multipliers have been applied; Amount <= 0 means the message was
// unparseable and must be rejected before persistence.
type TransactionRecord struct {
	Amount        int64           `json:"amount"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory"`
	Emoji         string          `json:"emoji"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Quantity      int             `json:"quantity"`
	Description   string          `json:"description"`
	OccurredOn    time.Time       `json:"occurred_on"`
	ReceiptURL    string          `json:"receipt_url,omitempty"`
}

// Parseable reports whether the record carries a usable amount.
func (r TransactionRecord) Parseable() bool {
	return r.Amount > 0
}

// TaskRecord is the structured result of parsing a task message.
// An empty Name means the message was unparseable. SequenceNumber is
// assigned at persistence time (row count + 1), not by the parser.
type TaskRecord struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Deadline       string `json:"deadline"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
	SequenceNumber int    `json:"sequence_number,omitempty"`
}

// Parseable reports whether the task carries a usable name.
func (t TaskRecord) Parseable() bool {
	return t.Name != ""
}

// TaskStatusNotStarted is the default status for tasks that omit one.
const TaskStatusNotStarted = "Chưa bắt đầu"
