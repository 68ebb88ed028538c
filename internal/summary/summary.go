// Package summary aggregates ledger rows into a monthly per-category
// digest.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndhuy/chitieu/internal/sheets"
	"github.com/ndhuy/chitieu/internal/types"
)

const dateLayout = "02/01/2006"

// Monthly holds aggregated amounts for one calendar month.
type Monthly struct {
	Year       int
	Month      time.Month
	Expenses   map[string]decimal.Decimal
	TotalSpent decimal.Decimal
	TotalIn    decimal.Decimal
}

// Aggregate sums the ledger rows that fall into the given month. Rows
// with an unreadable date or amount are skipped.
func Aggregate(rows []sheets.LedgerRow, year int, month time.Month) Monthly {
	m := Monthly{
		Year:     year,
		Month:    month,
		Expenses: make(map[string]decimal.Decimal),
	}

	for _, row := range rows {
		date, err := time.Parse(dateLayout, row.Date)
		if err != nil || date.Year() != year || date.Month() != month {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(row.Amount, ",", ""))
		if err != nil {
			continue
		}

		if row.Type == string(types.TransactionTypeIncome) {
			m.TotalIn = m.TotalIn.Add(amount)
			continue
		}
		m.Expenses[row.Category] = m.Expenses[row.Category].Add(amount)
		m.TotalSpent = m.TotalSpent.Add(amount)
	}
	return m
}

// Format renders the monthly digest, categories sorted by descending
// spend.
func Format(m Monthly) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 TỔNG KẾT THÁNG %d/%d\n\n", int(m.Month), m.Year)

	if len(m.Expenses) == 0 && m.TotalIn.IsZero() {
		b.WriteString("Chưa có giao dịch nào trong tháng này.")
		return b.String()
	}

	categories := make([]string, 0, len(m.Expenses))
	for c := range m.Expenses {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := m.Expenses[categories[i]], m.Expenses[categories[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return categories[i] < categories[j]
	})

	for _, c := range categories {
		fmt.Fprintf(&b, "• %s: %s₫\n", c, FormatVND(m.Expenses[c]))
	}
	fmt.Fprintf(&b, "\n💸 Tổng chi: %s₫", FormatVND(m.TotalSpent))
	if !m.TotalIn.IsZero() {
		fmt.Fprintf(&b, "\n💵 Tổng thu: %s₫", FormatVND(m.TotalIn))
	}
	return b.String()
}

// FormatVND renders a whole-VND amount with dot thousands separators,
// e.g. 1500000 -> "1.500.000".
func FormatVND(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}

// FormatAmount renders an int64 VND amount the same way.
func FormatAmount(amount int64) string {
	return FormatVND(decimal.NewFromInt(amount))
}
