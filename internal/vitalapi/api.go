// Package vitalapi exposes vital checks over HTTP.
package vitalapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/vitalwatch/internal/monitor"
	"github.com/linnemanlabs/vitalwatch/internal/vitals"
)

// CheckService defines the business operations vitalapi needs.
type CheckService interface {
	CheckVitals(ctx context.Context, temperature, pulseRate, spo2 float64) (*monitor.CheckResult, error)
	Check(ctx context.Context, readings ...monitor.Reading) (*monitor.CheckResult, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger log.Logger
	svc    CheckService
	auth   func(http.Handler) http.Handler
}

// New creates a new API handler. auth wraps every /api/v1 route and may be nil.
func New(logger log.Logger, svc CheckService, auth func(http.Handler) http.Handler) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if svc == nil {
		panic(xerrors.New("check service is required"))
	}
	return &API{
		logger: logger,
		svc:    svc,
		auth:   auth,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		if a.auth != nil {
			r.Use(a.auth)
		}
		r.Post("/vitals", a.handleCheckVitals)
		r.Post("/vitals/check", a.handleCheckVital)
		r.Get("/specs", a.handleSpecs)
	})
}

func (a *API) handleSpecs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []vitals.Spec{
		vitals.TemperatureSpec,
		vitals.PulseRateSpec,
		vitals.OxygenSaturationSpec,
	})
}

// writeResult maps a check outcome to a response. Alert failures still return
// the classification so the caller learns the severity even if nothing was shown.
func (a *API) writeResult(w http.ResponseWriter, r *http.Request, res *monitor.CheckResult, err error) {
	span := trace.SpanFromContext(r.Context())

	switch {
	case err == nil:
	case errors.Is(err, vitals.ErrMissingTranslation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, monitor.ErrQueueFull), errors.Is(err, monitor.ErrClosed):
		a.logger.Warn(r.Context(), "alert not queued", "error", err)
		if res != nil {
			span.SetAttributes(attribute.String("vitalwatch.check.id", res.ID))
		}
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":  err.Error(),
			"result": res,
		})
		return
	default:
		a.logger.Error(r.Context(), err, "vital check failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	span.SetAttributes(
		attribute.String("vitalwatch.check.id", res.ID),
		attribute.Bool("vitalwatch.check.ok", res.OK),
	)
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// nothing to do with errors here
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
