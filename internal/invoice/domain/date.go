package domain

import (
	"errors"
	"strings"
	"time"
)

const dueDateLayout = "2006-01-02"

var dueDateLayouts = []string{
	dueDateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// NormalizeDueDate reduces a date or timestamp to a bare YYYY-MM-DD string.
// Due dates carry no time component; storing the bare date avoids timezone
// ambiguity on the way in and out of the store.
func NormalizeDueDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.New("empty due date")
	}
	for _, layout := range dueDateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format(dueDateLayout), nil
		}
	}
	return "", errors.New("unrecognized due date format")
}
