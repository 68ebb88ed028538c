package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// classifyCategory assigns category, subcategory and emoji for an
// expense. The vehicle override is checked first and forces the
// vehicle category outright. Otherwise the entry with the longest
// matching name wins (earlier entries break ties) and the first
// matching keyword of that entry becomes the subcategory.
func (p *Parser) classifyCategory(input string) (category, subcategory, emoji string) {
	if c, s, e, ok := p.cfg.Vehicle.match(input, p.cfg.DefaultSubcategory); ok {
		return c, s, e
	}

	best := -1
	bestLen := 0
	for i, entry := range p.cfg.Categories {
		if !entry.matches(input) {
			continue
		}
		if l := utf8.RuneCountInString(entry.key()); l > bestLen {
			best, bestLen = i, l
		}
	}
	if best < 0 {
		return p.cfg.DefaultCategory, p.cfg.DefaultSubcategory, p.cfg.DefaultEmoji
	}

	entry := p.cfg.Categories[best]
	subcategory = p.cfg.DefaultSubcategory
	for _, kw := range entry.Keywords {
		if strings.Contains(input, kw) {
			subcategory = titleFirst(kw)
			break
		}
	}
	return entry.Name, subcategory, entry.Emoji
}

// match applies the vehicle override. The subcategory comes from the
// first subrule with a matching keyword; triggers that belong to no
// subrule fall through to the default subcategory.
func (v VehicleRule) match(input, defaultSub string) (category, subcategory, emoji string, ok bool) {
	triggered := false
	for _, t := range v.Triggers {
		if strings.Contains(input, t) {
			triggered = true
			break
		}
	}
	if !triggered {
		return "", "", "", false
	}

	for _, sub := range v.Subrules {
		for _, kw := range sub.Keywords {
			if strings.Contains(input, kw) {
				emoji = sub.Emoji
				if emoji == "" {
					emoji = v.Emoji
				}
				return v.Category, sub.Name, emoji, true
			}
		}
	}
	return v.Category, defaultSub, v.Emoji, true
}

// titleFirst upper-cases the first rune, matching how subcategory
// labels are displayed.
func titleFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
