package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// Digits grouped by . or , as thousands separators, or a plain run
	// of digits with an optional decimal tail, followed by an optional
	// currency unit. Longer unit alternatives are listed first so they
	// win over their prefixes.
	amountRe = regexp.MustCompile(`(?i)(\d{1,3}(?:[.,]\d{3})+|\d+(?:[.,]\d+)?)\s*(triệu|nghìn|đồng|vnd|tr|ng|k|đ|d)?`)

	// Digits followed by a physical unit. A span matched here is never
	// also an amount.
	quantityRe = regexp.MustCompile(`(?i)(\d+)\s*(lít|lit|chiếc|cái|chai|hộp|gói|túi|phần|suất|lần|kg|km|cm|tô|ly|l|g|m)`)
)

var unitMultipliers = map[string]int64{
	"k":     1_000,
	"ng":    1_000,
	"nghìn": 1_000,
	"tr":    1_000_000,
	"triệu": 1_000_000,
	"đ":     1,
	"đồng":  1,
	"d":     1,
	"vnd":   1,
}

type span struct {
	start, end int
}

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

type amountCandidate struct {
	value int64
	span  span
}

type quantityMatch struct {
	count int
	span  span
}

// boundaryAfter reports whether the match ending at byte offset end is
// not glued to a following letter or digit, so "70km" is not read as
// the amount "70k".
func boundaryAfter(s string, end int) bool {
	if end >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[end:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// findQuantities returns all quantity matches in s, in order of
// occurrence.
func findQuantities(s string) []quantityMatch {
	var out []quantityMatch
	for _, m := range quantityRe.FindAllStringSubmatchIndex(s, -1) {
		if !boundaryAfter(s, m[1]) {
			continue
		}
		n, err := strconv.Atoi(s[m[2]:m[3]])
		if err != nil || n <= 0 {
			continue
		}
		out = append(out, quantityMatch{count: n, span: span{m[0], m[1]}})
	}
	return out
}

// findAmounts returns all amount candidates in s, skipping any whose
// span overlaps one of the excluded spans (quantity matches).
func findAmounts(s string, excluded []span) []amountCandidate {
	var out []amountCandidate
	for _, m := range amountRe.FindAllStringSubmatchIndex(s, -1) {
		if !boundaryAfter(s, m[1]) {
			continue
		}
		sp := span{m[0], m[1]}
		if overlapsAny(sp, excluded) {
			continue
		}
		digits := strings.NewReplacer(".", "", ",", "").Replace(s[m[2]:m[3]])
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			continue
		}
		mult := int64(1)
		if m[4] >= 0 {
			mult = unitMultipliers[strings.ToLower(s[m[4]:m[5]])]
		}
		out = append(out, amountCandidate{value: n * mult, span: sp})
	}
	return out
}

// bestAmount picks the candidate with the largest value; the first
// occurrence wins ties. ok is false when s contains no amount at all.
func bestAmount(s string, excluded []span) (amountCandidate, bool) {
	candidates := findAmounts(s, excluded)
	if len(candidates) == 0 {
		return amountCandidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.value > best.value {
			best = c
		}
	}
	return best, true
}

func overlapsAny(sp span, excluded []span) bool {
	for _, e := range excluded {
		if sp.overlaps(e) {
			return true
		}
	}
	return false
}

func quantitySpans(qs []quantityMatch) []span {
	spans := make([]span, len(qs))
	for i, q := range qs {
		spans[i] = q.span
	}
	return spans
}

// stripNumericTokens removes amount and quantity tokens from s,
// collapsing the surrounding whitespace. Used when rewriting refund
// descriptions.
func stripNumericTokens(s string) string {
	s = quantityRe.ReplaceAllString(s, " ")
	s = amountRe.ReplaceAllString(s, " ")
	return collapseSpaces(s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
