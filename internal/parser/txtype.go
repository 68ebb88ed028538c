package parser

import "strings"

type txKind int

const (
	kindExpense txKind = iota
	kindIncome
	kindRefund
)

// classifyType decides the transaction direction before any category
// work happens. Refund keywords are checked first, then income
// keywords; everything else is an expense. First match wins, so text
// matching both an income keyword and a category keyword is income.
func (p *Parser) classifyType(input string) txKind {
	for _, kw := range p.cfg.RefundKeywords {
		if strings.Contains(input, kw) {
			return kindRefund
		}
	}
	for _, kw := range p.cfg.IncomeKeywords {
		if strings.Contains(input, kw) {
			return kindIncome
		}
	}
	return kindExpense
}
