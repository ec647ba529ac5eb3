package vitals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linnemanlabs/go-core/xerrors"
)

const (
	// AlertSeconds is how long every warning and critical alert is shown.
	AlertSeconds = 12

	// ToleranceRatio sizes the warning band as a fraction of the upper limit.
	ToleranceRatio = 0.015
)

// EngineHooks receives classification events. All fields are optional.
type EngineHooks struct {
	OnAssess func(a Assessment)
	OnAlert  func(vital string, severity Severity, duration float64, err error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithHooks installs metric hooks.
func WithHooks(h EngineHooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// WithoutWarnings disables the warning band: only critical readings alert.
func WithoutWarnings() Option {
	return func(e *Engine) { e.warnings = false }
}

// Engine classifies readings and alerts on warning and critical ones.
// It holds no mutable state after construction; concurrent use is safe when
// the Catalog and Alerter are.
type Engine struct {
	catalog  Catalog
	language string
	alerter  Alerter
	warnings bool
	hooks    EngineHooks
}

// NewEngine creates an engine that looks up messages in catalog for language
// and shows them through alerter.
func NewEngine(catalog Catalog, language string, alerter Alerter, opts ...Option) *Engine {
	if catalog == nil {
		panic(xerrors.New("message catalog is required"))
	}
	if alerter == nil {
		panic(xerrors.New("alerter is required"))
	}
	e := &Engine{
		catalog:  catalog,
		language: language,
		alerter:  alerter,
		warnings: true,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Language returns the language tag fixed at construction.
func (e *Engine) Language() string {
	return e.language
}

// SeverityOf classifies value against [lower, upper] without any lookup.
// Critical bounds are exclusive, warning bounds are inclusive, and the band
// width is ToleranceRatio*upper on both sides.
func SeverityOf(value, lower, upper float64) Severity {
	if value < lower {
		return SeverityCriticalLow
	}
	if value > upper {
		return SeverityCriticalHigh
	}
	tolerance := ToleranceRatio * upper
	if value <= lower+tolerance {
		return SeverityWarningLow
	}
	if value >= upper-tolerance {
		return SeverityWarningHigh
	}
	return SeverityOK
}

// Assess classifies one reading and selects its message. It has no side effects
// beyond the catalog lookup, which happens for every reading so that a missing
// translation is reported even while the value is safe.
func (e *Engine) Assess(vital string, value, lower, upper float64) (Assessment, error) {
	msgs, err := e.catalog.Messages(e.language, vital)
	if err != nil {
		return Assessment{}, fmt.Errorf("vitals: lookup %q for %q: %w", vital, e.language, err)
	}

	sev := SeverityOf(value, lower, upper)
	if sev.Warning() && !e.warnings {
		sev = SeverityOK
	}

	a := Assessment{
		Vital:    vital,
		Value:    value,
		Severity: sev,
		Message:  msgs.For(sev),
	}
	if sev != SeverityOK && a.Message == "" {
		return Assessment{}, fmt.Errorf("vitals: empty %s message for %q in %q: %w", sev, vital, e.language, ErrMissingTranslation)
	}
	if e.hooks.OnAssess != nil {
		e.hooks.OnAssess(a)
	}
	return a, nil
}

// Classify assesses a reading and, for warning or critical severities, shows
// the message for AlertSeconds. It reports whether the value is not critical;
// a warning still reports true. Lookup and alerter errors are returned to the
// caller, and a failed lookup reports false.
func (e *Engine) Classify(ctx context.Context, vital string, value, lower, upper float64) (bool, error) {
	a, err := e.Assess(vital, value, lower, upper)
	if err != nil {
		return false, err
	}
	return a.OK(), e.Alert(ctx, a)
}

// ClassifySpec is Classify with the limits taken from s.
func (e *Engine) ClassifySpec(ctx context.Context, s Spec, value float64) (bool, error) {
	return e.Classify(ctx, s.Name, value, s.Lower, s.Upper)
}

// Alert shows a's message when a is not OK. OK assessments are a no-op.
func (e *Engine) Alert(ctx context.Context, a Assessment) error {
	if a.Severity == SeverityOK {
		return nil
	}
	start := time.Now()
	err := e.alerter.Alert(ctx, a.Message, AlertSeconds)
	if e.hooks.OnAlert != nil {
		e.hooks.OnAlert(a.Vital, a.Severity, time.Since(start).Seconds(), err)
	}
	return err
}

// VitalsOK classifies temperature (°F), pulse rate (bpm) and SpO2 (%) against
// the clinical ranges. Every vital is classified, so each failing vital gets
// its own alert; the result is the AND of all three and errors are joined.
// A vital whose lookup fails reports false while the others still alert;
// monitor.Service.Check instead refuses the whole check.
func (e *Engine) VitalsOK(ctx context.Context, temperature, pulseRate, spo2 float64) (bool, error) {
	readings := []struct {
		spec  Spec
		value float64
	}{
		{TemperatureSpec, temperature},
		{PulseRateSpec, pulseRate},
		{OxygenSaturationSpec, spo2},
	}

	allOK := true
	var errs []error
	for _, r := range readings {
		ok, err := e.ClassifySpec(ctx, r.spec, r.value)
		if err != nil {
			errs = append(errs, err)
		}
		allOK = allOK && ok
	}
	return allOK, errors.Join(errs...)
}
