package monitor

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/linnemanlabs/vitalwatch/internal/vitals"
	"github.com/linnemanlabs/vitalwatch/internal/vitals/catalog"
)

// recordingAlerter records messages synchronously.
type recordingAlerter struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (r *recordingAlerter) Alert(_ context.Context, message string, _ int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return r.err
}

func newTestService(t *testing.T, lang string, a vitals.Alerter) (*Service, *Metrics) {
	t.Helper()
	m := NewMetrics(prometheus.NewRegistry())
	e := vitals.NewEngine(catalog.New(), lang, a)
	return NewService(e, log.Nop(), m), m
}

func TestCheckVitals_AllCritical(t *testing.T) {
	t.Parallel()

	a := &recordingAlerter{}
	svc, m := newTestService(t, "en", a)

	res, err := svc.CheckVitals(context.Background(), 94, 50, 85)
	if err != nil {
		t.Fatalf("CheckVitals: %v", err)
	}
	if res.OK {
		t.Error("OK = true, want false")
	}
	if res.ID == "" {
		t.Error("expected non-empty ID")
	}
	if res.Language != "en" {
		t.Errorf("Language = %q, want en", res.Language)
	}
	if len(res.Assessments) != 3 {
		t.Fatalf("assessments = %d, want 3", len(res.Assessments))
	}
	for _, as := range res.Assessments {
		if !as.Severity.Critical() {
			t.Errorf("%s severity = %q, want critical", as.Vital, as.Severity)
		}
	}
	want := []string{"Temperature critical!", "Pulse Rate is out of range!", "Oxygen Saturation out of range!"}
	if !slices.Equal(a.messages, want) {
		t.Errorf("alerts = %q, want %q", a.messages, want)
	}
	if got := testutil.ToFloat64(m.ChecksTotal.WithLabelValues("critical")); got != 1 {
		t.Errorf("critical checks = %v, want 1", got)
	}
}

func TestCheckVitals_Normal(t *testing.T) {
	t.Parallel()

	a := &recordingAlerter{}
	svc, m := newTestService(t, "de", a)

	res, err := svc.CheckVitals(context.Background(), 98.6, 80, 95)
	if err != nil {
		t.Fatalf("CheckVitals: %v", err)
	}
	if !res.OK {
		t.Error("OK = false, want true")
	}
	if len(a.messages) != 0 {
		t.Errorf("alerts = %q, want none", a.messages)
	}
	for _, as := range res.Assessments {
		if as.Message != "" {
			t.Errorf("%s message = %q, want empty", as.Vital, as.Message)
		}
	}
	if got := testutil.ToFloat64(m.ChecksTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok checks = %v, want 1", got)
	}
}

func TestCheck_CustomSpec(t *testing.T) {
	t.Parallel()

	a := &recordingAlerter{}
	svc, _ := newTestService(t, "en", a)

	res, err := svc.Check(context.Background(), Reading{Spec: vitals.PulseRateSpec, Value: 61})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.OK {
		t.Error("warning should be OK")
	}
	if res.Assessments[0].Severity != vitals.SeverityWarningLow {
		t.Errorf("severity = %q, want %q", res.Assessments[0].Severity, vitals.SeverityWarningLow)
	}
	if !slices.Equal(a.messages, []string{"Approaching bradycardia"}) {
		t.Errorf("alerts = %q", a.messages)
	}
}

func TestCheck_LookupErrorRaisesNoAlerts(t *testing.T) {
	t.Parallel()

	a := &recordingAlerter{}
	svc, m := newTestService(t, "en", a)

	_, err := svc.Check(context.Background(),
		Reading{Spec: vitals.TemperatureSpec, Value: 94},
		Reading{Spec: vitals.Spec{Name: "Blood Pressure", Lower: 90, Upper: 140}, Value: 200},
	)
	if !errors.Is(err, vitals.ErrMissingTranslation) {
		t.Fatalf("err = %v, want ErrMissingTranslation", err)
	}
	if len(a.messages) != 0 {
		t.Errorf("alerts = %q, want none", a.messages)
	}
	if got := testutil.ToFloat64(m.ChecksTotal.WithLabelValues("lookup_error")); got != 1 {
		t.Errorf("lookup errors = %v, want 1", got)
	}
}

func TestCheckVitals_MissingVitalDiffersFromVitalsOK(t *testing.T) {
	t.Parallel()

	noPulse, err := catalog.NewStatic(map[string]map[string]vitals.Messages{
		"en": {
			vitals.Temperature:      {Critical: "temp", WarningLow: "temp low", WarningHigh: "temp high"},
			vitals.OxygenSaturation: {Critical: "spo2", WarningLow: "spo2 low", WarningHigh: "spo2 high"},
		},
	})
	if err != nil {
		t.Fatalf("NewStatic: %v", err)
	}

	engineAlerts := &recordingAlerter{}
	e := vitals.NewEngine(noPulse, "en", engineAlerts)
	ok, err := e.VitalsOK(context.Background(), 94, 72, 85)
	if ok || !errors.Is(err, vitals.ErrMissingTranslation) {
		t.Fatalf("VitalsOK = %v, %v; want false, ErrMissingTranslation", ok, err)
	}
	if !slices.Equal(engineAlerts.messages, []string{"temp", "spo2"}) {
		t.Errorf("VitalsOK alerts = %q, want resolved vitals alerted", engineAlerts.messages)
	}

	svcAlerts := &recordingAlerter{}
	svc := NewService(vitals.NewEngine(noPulse, "en", svcAlerts), log.Nop(), nil)
	res, err := svc.CheckVitals(context.Background(), 94, 72, 85)
	if res != nil || !errors.Is(err, vitals.ErrMissingTranslation) {
		t.Fatalf("CheckVitals = %+v, %v; want nil, ErrMissingTranslation", res, err)
	}
	if len(svcAlerts.messages) != 0 {
		t.Errorf("CheckVitals alerts = %q, want none", svcAlerts.messages)
	}
}

func TestCheck_AlertErrorReturnsResult(t *testing.T) {
	t.Parallel()

	a := &recordingAlerter{err: ErrQueueFull}
	svc, m := newTestService(t, "en", a)

	res, err := svc.CheckVitals(context.Background(), 94, 50, 95)
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	if res == nil {
		t.Fatal("expected result alongside alert error")
	}
	if res.OK {
		t.Error("OK = true, want false")
	}
	if len(a.messages) != 2 {
		t.Errorf("alert attempts = %d, want 2", len(a.messages))
	}
	if got := testutil.ToFloat64(m.ChecksTotal.WithLabelValues("alert_error")); got != 1 {
		t.Errorf("alert errors = %v, want 1", got)
	}
}

func TestCheck_WithDispatcher(t *testing.T) {
	t.Parallel()

	rec := &recordingAlerter{}
	d := NewDispatcher(rec, 8, log.Nop(), DispatchHooks{})
	svc, _ := newTestService(t, "ger", d)

	res, err := svc.CheckVitals(context.Background(), 96, 80, 85)
	if err != nil {
		t.Fatalf("CheckVitals: %v", err)
	}
	if res.OK {
		t.Error("OK = true, want false")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	want := []string{"Annäherung an Unterkühlung", "Sauerstoffsättigung außerhalb des Bereichs!"}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if !slices.Equal(rec.messages, want) {
		t.Errorf("alerts = %q, want %q", rec.messages, want)
	}
}

func TestCheck_FixedClock(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, "en", &recordingAlerter{})
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	res, err := svc.CheckVitals(context.Background(), 98, 80, 95)
	if err != nil {
		t.Fatalf("CheckVitals: %v", err)
	}
	if !res.CheckedAt.Equal(at) {
		t.Errorf("CheckedAt = %v, want %v", res.CheckedAt, at)
	}
}

func TestCheck_UniqueIDs(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, "en", &recordingAlerter{})
	seen := make(map[string]bool)
	for range 100 {
		res, err := svc.CheckVitals(context.Background(), 98, 80, 95)
		if err != nil {
			t.Fatalf("CheckVitals: %v", err)
		}
		if seen[res.ID] {
			t.Fatalf("duplicate ID %q", res.ID)
		}
		seen[res.ID] = true
	}
}

func TestNewService_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("NewService(nil, ...) did not panic")
		}
	}()
	NewService(nil, nil, nil)
}
