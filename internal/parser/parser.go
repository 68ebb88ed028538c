// Package parser turns loosely-formatted Vietnamese expense, income
// and task messages into structured records. Parsing is pure: the same
// (text, now) pair always yields the same record, and malformed input
// degrades to sentinel values (zero amount, empty task name) instead
// of errors.
package parser

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ndhuy/chitieu/internal/types"
)

// Parser holds the immutable keyword tables. It is safe for concurrent
// use.
type Parser struct {
	cfg Config
}

// New creates a parser from the given tables.
func New(cfg Config) *Parser {
	return &Parser{cfg: cfg}
}

// NewDefault creates a parser with the canonical Vietnamese tables.
func NewDefault() *Parser {
	return New(DefaultConfig())
}

// ParseTransaction parses an expense or income message. now anchors
// date resolution and becomes OccurredOn when the text names no date.
// A returned record with Amount <= 0 is unparseable and must be
// rejected by the caller.
func (p *Parser) ParseTransaction(text string, now time.Time) types.TransactionRecord {
	raw := strings.TrimSpace(text)
	lower := strings.ToLower(raw)

	rec := types.TransactionRecord{
		Quantity:      1,
		PaymentMethod: types.PaymentMethodCash,
		OccurredOn:    resolveDate(lower, now),
	}

	sp := splitSegments(raw)
	var paymentSegments []string
	if sp.delimited {
		rec.Description = sp.description
		for _, field := range sp.fields {
			if qs := findQuantities(field); len(qs) > 0 {
				rec.Quantity = qs[0].count
				continue
			}
			if c, ok := bestAmount(field, nil); ok {
				if c.value > rec.Amount {
					rec.Amount = c.value
				}
				continue
			}
			if utf8.RuneCountInString(field) <= maxPaymentSegmentLen {
				paymentSegments = append(paymentSegments, field)
			}
		}
	} else {
		qs := findQuantities(raw)
		if len(qs) > 0 {
			rec.Quantity = qs[0].count
		}
		if c, ok := bestAmount(raw, quantitySpans(qs)); ok {
			rec.Amount = c.value
			rec.Description = collapseSpaces(raw[:c.span.start] + " " + raw[c.span.end:])
		} else {
			rec.Description = raw
		}
	}

	switch p.classifyType(lower) {
	case kindRefund:
		rec.Type = types.TransactionTypeIncome
		rec.Category = p.cfg.RefundCategory
		rec.Emoji = p.cfg.RefundEmoji
		rec.Subcategory = p.cfg.DefaultSubcategory
		if residual := stripNumericTokens(rec.Description); residual != "" {
			rec.Description = p.cfg.RefundCategory + " - " + residual
		} else {
			rec.Description = p.cfg.RefundCategory
		}
	case kindIncome:
		rec.Type = types.TransactionTypeIncome
		rec.Category = p.cfg.IncomeCategory
		rec.Emoji = p.cfg.IncomeEmoji
		rec.Subcategory = p.cfg.DefaultSubcategory
	default:
		rec.Type = types.TransactionTypeExpense
		rec.Category, rec.Subcategory, rec.Emoji = p.classifyCategory(lower)
		rec.PaymentMethod = p.resolvePayment(paymentSegments, lower)
	}

	return rec
}
