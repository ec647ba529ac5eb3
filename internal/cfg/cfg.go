package cfg

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// Config holds vitalwatch application settings. Each field is bound to a flag
// by RegisterFlags and can be filled from VITALWATCH_* environment variables.
type Config struct {
	Language              string
	DrainSeconds          int
	ShutdownBudgetSeconds int
	APIPort               int
	APIToken              string
	QueueSize             int
	DisableWarnings       bool
}

// RegisterFlags binds Config fields to the given FlagSet with defaults inline
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Language, "language", "en", "language tag for alert messages (e.g. en, de)")
	fs.IntVar(&c.DrainSeconds, "drain-seconds", 15, "seconds to wait for in-flight requests to drain before shutdown (1..300)")
	fs.IntVar(&c.ShutdownBudgetSeconds, "shutdown-budget-seconds", 30, "total seconds for component shutdown after drain (1..300)")
	fs.IntVar(&c.APIPort, "http-port", 8080, "API listen TCP port (1..65535)")
	fs.StringVar(&c.APIToken, "api-token", "", "bearer token required on /api/v1 (empty = no auth)")
	fs.IntVar(&c.QueueSize, "alert-queue-size", 64, "maximum alerts waiting to be rendered (1..10000)")
	fs.BoolVar(&c.DisableWarnings, "disable-warnings", false, "alert on critical readings only")
}

// Validate checks all configuration fields for correctness.
// It returns an error if any field is invalid, or nil if all fields are valid.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Language) == "" {
		errs = append(errs, errors.New("LANGUAGE is required"))
	}

	// Drain and shutdown budgets
	if c.DrainSeconds <= 0 || c.DrainSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid DRAIN_SECONDS %d (must be 1..300)", c.DrainSeconds))
	}
	if c.ShutdownBudgetSeconds <= 0 || c.ShutdownBudgetSeconds > 300 {
		errs = append(errs, fmt.Errorf("invalid SHUTDOWN_BUDGET_SECONDS %d (must be 1..300)", c.ShutdownBudgetSeconds))
	}

	// Shutdown budget must be greater than drain time
	if c.ShutdownBudgetSeconds <= c.DrainSeconds {
		errs = append(errs, fmt.Errorf("SHUTDOWN_BUDGET_SECONDS %d must be greater than DRAIN_SECONDS %d", c.ShutdownBudgetSeconds, c.DrainSeconds))
	}

	// API port must be valid TCP port number
	if c.APIPort <= 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %d (must be 1..65535)", c.APIPort))
	}

	if c.QueueSize <= 0 || c.QueueSize > 10000 {
		errs = append(errs, fmt.Errorf("invalid ALERT_QUEUE_SIZE %d (must be 1..10000)", c.QueueSize))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
