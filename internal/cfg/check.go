package cfg

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strings"
)

// CheckConfig holds the settings of a one-shot vitals check.
type CheckConfig struct {
	Language        string
	Temperature     float64
	PulseRate       float64
	SpO2            float64
	DisableWarnings bool
}

// RegisterFlags binds CheckConfig fields to the given FlagSet. Readings default
// to NaN so Validate can tell a missing flag from a zero value.
func (c *CheckConfig) RegisterFlags(fs *flag.FlagSet) {
	c.Temperature, c.PulseRate, c.SpO2 = math.NaN(), math.NaN(), math.NaN()
	fs.StringVar(&c.Language, "language", "en", "language tag for alert messages (e.g. en, de)")
	fs.Float64Var(&c.Temperature, "temperature", c.Temperature, "body temperature in °F")
	fs.Float64Var(&c.PulseRate, "pulse-rate", c.PulseRate, "pulse rate in beats per minute")
	fs.Float64Var(&c.SpO2, "spo2", c.SpO2, "oxygen saturation in percent")
	fs.BoolVar(&c.DisableWarnings, "disable-warnings", false, "alert on critical readings only")
}

// Validate checks that a language and all three finite readings were given.
func (c *CheckConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Language) == "" {
		errs = append(errs, errors.New("LANGUAGE is required"))
	}
	for _, r := range []struct {
		name  string
		value float64
	}{
		{"TEMPERATURE", c.Temperature},
		{"PULSE_RATE", c.PulseRate},
		{"SPO2", c.SpO2},
	} {
		if math.IsNaN(r.value) || math.IsInf(r.value, 0) {
			errs = append(errs, fmt.Errorf("%s is required and must be a finite number", r.name))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
