package vitalapi

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/linnemanlabs/vitalwatch/internal/monitor"
	"github.com/linnemanlabs/vitalwatch/internal/vitals"
)

type vitalsRequest struct {
	Temperature *float64 `json:"temperature"`
	PulseRate   *float64 `json:"pulse_rate"`
	SpO2        *float64 `json:"spo2"`
}

type checkRequest struct {
	Vital string   `json:"vital"`
	Value *float64 `json:"value"`
	Lower *float64 `json:"lower"`
	Upper *float64 `json:"upper"`
}

func (a *API) handleCheckVitals(w http.ResponseWriter, r *http.Request) {
	var req vitalsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := requireFinite(
		field{"temperature", req.Temperature},
		field{"pulse_rate", req.PulseRate},
		field{"spo2", req.SpO2},
	); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := a.svc.CheckVitals(r.Context(), *req.Temperature, *req.PulseRate, *req.SpO2)
	a.writeResult(w, r, res, err)
}

func (a *API) handleCheckVital(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if strings.TrimSpace(req.Vital) == "" {
		writeError(w, http.StatusBadRequest, "vital is required")
		return
	}
	if err := requireFinite(
		field{"value", req.Value},
		field{"lower", req.Lower},
		field{"upper", req.Upper},
	); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if *req.Lower > *req.Upper {
		writeError(w, http.StatusBadRequest, "lower must not exceed upper")
		return
	}

	res, err := a.svc.Check(r.Context(), monitor.Reading{
		Spec:  vitals.Spec{Name: req.Vital, Lower: *req.Lower, Upper: *req.Upper},
		Value: *req.Value,
	})
	a.writeResult(w, r, res, err)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type field struct {
	name  string
	value *float64
}

func requireFinite(fields ...field) error {
	for _, f := range fields {
		if f.value == nil {
			return fmt.Errorf("%s is required", f.name)
		}
		if math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			return fmt.Errorf("%s must be finite", f.name)
		}
	}
	return nil
}
