package parser

import (
	"strings"

	"github.com/ndhuy/chitieu/internal/types"
)

// IsTask reports whether text starts with one of the configured task
// prefixes. Callers may also route to ParseTask based on chat context.
func (p *Parser) IsTask(text string) bool {
	_, ok := p.stripTaskPrefix(strings.TrimSpace(text))
	return ok
}

// ParseTask parses a task message into a TaskRecord. An empty Name
// marks the message unparseable; the caller rejects it before
// persistence. The body splits on " - ": five segments are
// name/description/deadline/status/notes, three are the legacy
// name/deadline/status form, anything else keeps only the name.
func (p *Parser) ParseTask(text string) types.TaskRecord {
	body := strings.TrimSpace(text)
	if rest, ok := p.stripTaskPrefix(body); ok {
		body = rest
	}
	if body == "" {
		return types.TaskRecord{}
	}

	parts := strings.Split(body, fieldDelimiter)
	for i, s := range parts {
		parts[i] = strings.TrimSpace(s)
	}

	task := types.TaskRecord{Name: parts[0], Status: types.TaskStatusNotStarted}
	switch len(parts) {
	case 5:
		task.Description = parts[1]
		task.Deadline = parts[2]
		if parts[3] != "" {
			task.Status = parts[3]
		}
		task.Notes = parts[4]
	case 3:
		task.Deadline = parts[1]
		if parts[2] != "" {
			task.Status = parts[2]
		}
	}
	return task
}

// stripTaskPrefix removes the first matching task prefix. Prefixes are
// configured longest-first so the most specific one wins.
func (p *Parser) stripTaskPrefix(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, prefix := range p.cfg.TaskPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return strings.TrimSpace(text[len(prefix):]), true
		}
	}
	return text, false
}
