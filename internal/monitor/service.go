package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"github.com/oklog/ulid/v2"

	"github.com/linnemanlabs/vitalwatch/internal/vitals"
)

// Reading is one vital value with the limits to judge it by.
type Reading struct {
	Spec  vitals.Spec
	Value float64
}

// CheckResult is the outcome of one check request.
type CheckResult struct {
	ID          string              `json:"id"`
	OK          bool                `json:"ok"`
	Language    string              `json:"language"`
	Assessments []vitals.Assessment `json:"assessments"`
	CheckedAt   time.Time           `json:"checked_at"`
}

// Service is the business boundary for vital checks.
type Service struct {
	engine  *vitals.Engine
	logger  log.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewService creates a new monitor service. metrics may be nil.
func NewService(engine *vitals.Engine, logger log.Logger, metrics *Metrics) *Service {
	if engine == nil {
		panic(xerrors.New("vitals engine is required"))
	}
	if logger == nil {
		logger = log.Nop()
	}
	return &Service{
		engine:  engine,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// CheckVitals classifies temperature, pulse rate and SpO2 against the
// clinical ranges. Every reading is classified and alerted on its own.
func (s *Service) CheckVitals(ctx context.Context, temperature, pulseRate, spo2 float64) (*CheckResult, error) {
	return s.Check(ctx,
		Reading{Spec: vitals.TemperatureSpec, Value: temperature},
		Reading{Spec: vitals.PulseRateSpec, Value: pulseRate},
		Reading{Spec: vitals.OxygenSaturationSpec, Value: spo2},
	)
}

// Check classifies each reading and raises an alert for every warning or
// critical one. Lookup failures abort the check before any alert is raised,
// unlike vitals.Engine.VitalsOK which still alerts the vitals it could resolve.
// Alert failures are joined and returned with the result.
func (s *Service) Check(ctx context.Context, readings ...Reading) (*CheckResult, error) {
	id := ulid.Make().String()
	L := s.logger.With("check_id", id, "language", s.engine.Language())

	res := &CheckResult{
		ID:          id,
		OK:          true,
		Language:    s.engine.Language(),
		Assessments: make([]vitals.Assessment, 0, len(readings)),
		CheckedAt:   s.now(),
	}

	var lookupErrs []error
	for _, r := range readings {
		a, err := s.engine.Assess(r.Spec.Name, r.Value, r.Spec.Lower, r.Spec.Upper)
		if err != nil {
			lookupErrs = append(lookupErrs, err)
			continue
		}
		res.Assessments = append(res.Assessments, a)
		res.OK = res.OK && a.OK()
	}
	if err := errors.Join(lookupErrs...); err != nil {
		s.observe("lookup_error")
		L.Warn(ctx, "check rejected", "error", err)
		return nil, err
	}

	var alertErrs []error
	for _, a := range res.Assessments {
		if a.Severity == vitals.SeverityOK {
			continue
		}
		L.Info(ctx, "vital out of range",
			"vital", a.Vital,
			"value", a.Value,
			"severity", a.Severity,
		)
		if err := s.engine.Alert(ctx, a); err != nil {
			alertErrs = append(alertErrs, err)
		}
	}

	outcome := "ok"
	if !res.OK {
		outcome = "critical"
	}
	if err := errors.Join(alertErrs...); err != nil {
		s.observe("alert_error")
		L.Error(ctx, err, "alert dispatch failed")
		return res, err
	}
	s.observe(outcome)
	return res, nil
}

func (s *Service) observe(result string) {
	if s.metrics != nil {
		s.metrics.ChecksTotal.WithLabelValues(result).Inc()
	}
}
