package selector

import (
	"strings"
)

// SelectorError reports an invalid selector or override declaration.
type SelectorError struct {
	Selector    string
	Reason      string
	Suggestions []string
}

func (e *SelectorError) Error() string {
	msg := "selector " + e.Selector + ": " + e.Reason
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return msg
}

// UnusedSelectorError lists every declared override that never took effect.
type UnusedSelectorError struct {
	Entries []Entry
}

func (e *UnusedSelectorError) Error() string {
	var sb strings.Builder
	sb.WriteString("found unused selectors")
	for _, entry := range e.Entries {
		sb.WriteString("\n -> ")
		sb.WriteString(entry.String())
	}

	return sb.String()
}
