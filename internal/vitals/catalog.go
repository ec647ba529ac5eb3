package vitals

import (
	"context"
	"errors"
)

// ErrMissingTranslation is returned, wrapped, when a catalog has no messages
// for a language and vital pair.
var ErrMissingTranslation = errors.New("missing translation")

// Messages holds the display strings for one vital in one language.
type Messages struct {
	Critical    string `json:"critical"`
	WarningLow  string `json:"warning_low"`
	WarningHigh string `json:"warning_high"`
}

// For returns the message to show for severity s, or "" for SeverityOK.
func (m Messages) For(s Severity) string {
	switch s {
	case SeverityCriticalLow, SeverityCriticalHigh:
		return m.Critical
	case SeverityWarningLow:
		return m.WarningLow
	case SeverityWarningHigh:
		return m.WarningHigh
	default:
		return ""
	}
}

// Catalog looks up alert messages by language tag and vital name.
// Implementations must be safe for concurrent reads.
type Catalog interface {
	Messages(language, vital string) (Messages, error)
}

// Alerter displays a message for a number of seconds.
type Alerter interface {
	Alert(ctx context.Context, message string, seconds int) error
}

// AlerterFunc adapts a function to Alerter.
type AlerterFunc func(ctx context.Context, message string, seconds int) error

// Alert calls f.
func (f AlerterFunc) Alert(ctx context.Context, message string, seconds int) error {
	return f(ctx, message, seconds)
}
