package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC)

func TestAmountUnitSuffixes(t *testing.T) {
	p := NewDefault()

	tests := []struct {
		name   string
		text   string
		amount int64
	}{
		{name: "no_unit", text: "mua đồ 45000", amount: 45_000},
		{name: "k_suffix", text: "mua đồ 45k", amount: 45_000},
		{name: "nghin_suffix", text: "mua đồ 45 nghìn", amount: 45_000},
		{name: "ng_suffix", text: "mua đồ 45ng", amount: 45_000},
		{name: "tr_suffix", text: "mua đồ 45tr", amount: 45_000_000},
		{name: "trieu_suffix", text: "mua đồ 45 triệu", amount: 45_000_000},
		{name: "dong_suffix", text: "mua đồ 45000 đồng", amount: 45_000},
		{name: "vnd_suffix", text: "mua đồ 45000 vnd", amount: 45_000},
		{name: "grouped_dots", text: "mua đồ 1.500.000", amount: 1_500_000},
		{name: "grouped_commas", text: "mua đồ 1,500,000đ", amount: 1_500_000},
		{name: "grouped_with_k", text: "mua đồ 1.500k", amount: 1_500_000},
		{name: "plain_run_with_k", text: "mua đồ 1500k", amount: 1_500_000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := p.ParseTransaction(tc.text, testNow)
			assert.Equal(t, tc.amount, rec.Amount)
		})
	}
}

func TestLargestAmountWins(t *testing.T) {
	p := NewDefault()

	tests := []struct {
		name   string
		text   string
		amount int64
	}{
		{name: "later_candidate_larger", text: "50k 2tr", amount: 2_000_000},
		{name: "earlier_candidate_larger", text: "2tr 50k", amount: 2_000_000},
		{name: "tie_first_wins", text: "mua đồ 30k 30k", amount: 30_000},
		{name: "date_digits_ignored", text: "họp 10/6 200k", amount: 200_000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := p.ParseTransaction(tc.text, testNow)
			assert.Equal(t, tc.amount, rec.Amount)
		})
	}
}

func TestQuantityDisambiguation(t *testing.T) {
	p := NewDefault()

	t.Run("quantity_is_not_an_amount", func(t *testing.T) {
		rec := p.ParseTransaction("70L", testNow)
		assert.Equal(t, 70, rec.Quantity)
		assert.Equal(t, int64(0), rec.Amount)
		assert.False(t, rec.Parseable())
	})

	t.Run("quantity_alongside_amount", func(t *testing.T) {
		rec := p.ParseTransaction("Đổ xăng 70 lít 1500k", testNow)
		require.True(t, rec.Parseable())
		assert.Equal(t, int64(1_500_000), rec.Amount)
		assert.Equal(t, 70, rec.Quantity)
	})

	t.Run("counted_items", func(t *testing.T) {
		rec := p.ParseTransaction("trà sữa 2 ly 60k", testNow)
		assert.Equal(t, int64(60_000), rec.Amount)
		assert.Equal(t, 2, rec.Quantity)
	})

	t.Run("default_quantity", func(t *testing.T) {
		rec := p.ParseTransaction("mua đồ 100k", testNow)
		assert.Equal(t, 1, rec.Quantity)
	})

	t.Run("unit_glued_to_word_not_matched", func(t *testing.T) {
		// "70km" is neither the amount "70k" nor a bare 70.
		rec := p.ParseTransaction("đi 70km hết 50k", testNow)
		assert.Equal(t, int64(50_000), rec.Amount)
		assert.Equal(t, 70, rec.Quantity)
	})
}

func TestNoAmountRejection(t *testing.T) {
	p := NewDefault()

	for _, text := range []string{"Xin chào", "hello", ""} {
		rec := p.ParseTransaction(text, testNow)
		assert.False(t, rec.Parseable(), "text %q should be unparseable", text)
		assert.Equal(t, int64(0), rec.Amount)
	}
}

func TestStripNumericTokens(t *testing.T) {
	assert.Equal(t, "Hoàn vé xe", stripNumericTokens("Hoàn vé xe 500k"))
	assert.Equal(t, "mua", stripNumericTokens("mua 2 ly 30k"))
	assert.Equal(t, "", stripNumericTokens("500k"))
}
