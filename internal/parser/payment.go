package parser

import (
	"strings"

	"github.com/ndhuy/chitieu/internal/types"
)

// maxPaymentSegmentLen is the longest a delimited segment can be and
// still be considered a payment-method token.
const maxPaymentSegmentLen = 10

// resolvePayment maps a payment keyword to its canonical method.
// Dedicated payment segments isolated by the splitter are searched
// first; the whole input is the fallback. No match means cash.
func (p *Parser) resolvePayment(segments []string, input string) types.PaymentMethod {
	for _, seg := range segments {
		if m, ok := p.lookupPayment(seg); ok {
			return m
		}
	}
	if m, ok := p.lookupPayment(input); ok {
		return m
	}
	return types.PaymentMethodCash
}

func (p *Parser) lookupPayment(s string) (types.PaymentMethod, bool) {
	s = strings.ToLower(s)
	for _, r := range p.cfg.PaymentRules {
		if strings.Contains(s, r.Keyword) {
			return r.Method, true
		}
	}
	return "", false
}
