package parser

import (
	"strings"

	"github.com/ndhuy/chitieu/internal/types"
)

// CategoryEntry is one row of the category table. The entry matches an
// input when the lowercased entry name or any of its keywords occurs as
// a substring; among matching entries the one with the longest name
// wins, earlier entries breaking ties.
type CategoryEntry struct {
	Name     string
	Emoji    string
	Keywords []string
}

func (e CategoryEntry) key() string {
	return strings.ToLower(e.Name)
}

func (e CategoryEntry) matches(input string) bool {
	if strings.Contains(input, e.key()) {
		return true
	}
	for _, kw := range e.Keywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}

// VehicleSubrule assigns a subcategory when one of its keywords
// matches. Subrules are evaluated in priority order.
type VehicleSubrule struct {
	Name     string
	Emoji    string
	Keywords []string
}

// VehicleRule forces the vehicle category whenever a trigger keyword
// is present, regardless of what the category table would pick.
type VehicleRule struct {
	Category string
	Emoji    string
	Triggers []string
	Subrules []VehicleSubrule
}

// PaymentRule maps one keyword to a canonical payment method. Rules
// are scanned in order; the first substring match wins.
type PaymentRule struct {
	Keyword string
	Method  types.PaymentMethod
}

// Config holds the keyword tables the parser is built from. It is
// treated as immutable after construction; DefaultConfig returns the
// canonical Vietnamese tables.
type Config struct {
	Categories []CategoryEntry
	Vehicle    VehicleRule

	IncomeKeywords []string
	RefundKeywords []string
	IncomeCategory string
	IncomeEmoji    string
	RefundCategory string
	RefundEmoji    string

	PaymentRules []PaymentRule

	TaskPrefixes []string

	DefaultCategory    string
	DefaultEmoji       string
	DefaultSubcategory string
}
