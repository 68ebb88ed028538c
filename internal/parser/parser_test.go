package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndhuy/chitieu/internal/types"
)

func TestParseIsIdempotent(t *testing.T) {
	p := NewDefault()
	now := time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC)

	for _, text := range []string{
		"Ăn trưa - 45k - tm",
		"Đổ xăng 70 lít 1500k",
		"Lương tháng 6 20 triệu",
		"Xin chào",
	} {
		first := p.ParseTransaction(text, now)
		second := p.ParseTransaction(text, now)
		assert.Equal(t, first, second, "parsing %q twice must agree", text)
	}
}

func TestDelimitedAndFreeFormEquivalence(t *testing.T) {
	p := NewDefault()

	delimited := p.ParseTransaction("Ăn trưa - 45k - tm", testNow)
	freeform := p.ParseTransaction("Ăn trưa 45k tm", testNow)

	for _, rec := range []types.TransactionRecord{delimited, freeform} {
		require.True(t, rec.Parseable())
		assert.Equal(t, int64(45_000), rec.Amount)
		assert.Equal(t, types.PaymentMethodCash, rec.PaymentMethod)
		assert.Equal(t, types.TransactionTypeExpense, rec.Type)
		assert.Equal(t, "Nhà hàng", rec.Category)
		assert.Equal(t, "Ăn trưa", rec.Subcategory)
	}

	assert.Equal(t, "Ăn trưa", delimited.Description)
}

func TestTransactionTypePriority(t *testing.T) {
	p := NewDefault()

	t.Run("income_keyword", func(t *testing.T) {
		rec := p.ParseTransaction("Lương tháng 6 20 triệu", testNow)
		assert.Equal(t, types.TransactionTypeIncome, rec.Type)
		assert.Equal(t, "Thu nhập", rec.Category)
		assert.Equal(t, int64(20_000_000), rec.Amount)
	})

	t.Run("refund_beats_income", func(t *testing.T) {
		// "hoàn" wins even though "nhận" is also an income keyword.
		rec := p.ParseTransaction("nhận hoàn tiền vé xe 500k", testNow)
		assert.Equal(t, types.TransactionTypeIncome, rec.Type)
		assert.Equal(t, "Hoàn tiền", rec.Category)
	})

	t.Run("refund_description_rewritten", func(t *testing.T) {
		rec := p.ParseTransaction("Hoàn vé xe 500k", testNow)
		assert.Equal(t, int64(500_000), rec.Amount)
		assert.Equal(t, "Hoàn tiền - Hoàn vé xe", rec.Description)
	})

	t.Run("income_beats_category_keywords", func(t *testing.T) {
		// Matches both an income keyword and a food keyword; income wins.
		rec := p.ParseTransaction("nhận tiền cơm 100k", testNow)
		assert.Equal(t, types.TransactionTypeIncome, rec.Type)
		assert.Equal(t, "Thu nhập", rec.Category)
	})

	t.Run("plain_expense", func(t *testing.T) {
		rec := p.ParseTransaction("cà phê 30k", testNow)
		assert.Equal(t, types.TransactionTypeExpense, rec.Type)
		assert.Equal(t, "Café", rec.Category)
	})
}

func TestPaymentMethodResolution(t *testing.T) {
	p := NewDefault()

	tests := []struct {
		name   string
		text   string
		method types.PaymentMethod
	}{
		{name: "tk_segment", text: "Đổ xăng - 500k - tk", method: types.PaymentMethodTransfer},
		{name: "ck_segment", text: "Cơm gà - 50k - ck", method: types.PaymentMethodTransfer},
		{name: "banking_freeform", text: "mua đồ 100k banking", method: types.PaymentMethodTransfer},
		{name: "full_phrase", text: "mua đồ 100k chuyển khoản", method: types.PaymentMethodTransfer},
		{name: "cash_segment", text: "Ăn trưa - 45k - tm", method: types.PaymentMethodCash},
		{name: "default_cash", text: "trà sữa 30k", method: types.PaymentMethodCash},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := p.ParseTransaction(tc.text, testNow)
			assert.Equal(t, tc.method, rec.PaymentMethod)
		})
	}
}

func TestDelimitedSegments(t *testing.T) {
	p := NewDefault()

	t.Run("segment_zero_is_description", func(t *testing.T) {
		rec := p.ParseTransaction("Cơm văn phòng - 45k - tm", testNow)
		assert.Equal(t, "Cơm văn phòng", rec.Description)
		assert.Equal(t, int64(45_000), rec.Amount)
	})

	t.Run("long_segment_is_not_a_payment_token", func(t *testing.T) {
		rec := p.ParseTransaction("Ăn tối - quán quen ở quận 3 - 200k", testNow)
		assert.Equal(t, int64(200_000), rec.Amount)
		assert.Equal(t, types.PaymentMethodCash, rec.PaymentMethod)
	})

	t.Run("quantity_segment", func(t *testing.T) {
		rec := p.ParseTransaction("Trà sữa - 2 ly - 60k - tm", testNow)
		assert.Equal(t, 2, rec.Quantity)
		assert.Equal(t, int64(60_000), rec.Amount)
	})

	t.Run("free_form_description_drops_amount", func(t *testing.T) {
		rec := p.ParseTransaction("Lương tháng 6 20 triệu", testNow)
		assert.Equal(t, "Lương tháng 6", rec.Description)
	})
}

func TestOccurredOnDefaultsToNow(t *testing.T) {
	p := NewDefault()
	rec := p.ParseTransaction("cà phê 30k", testNow)
	assert.Equal(t, testNow, rec.OccurredOn)
}
