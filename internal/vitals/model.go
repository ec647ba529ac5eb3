package vitals

// Severity is the outcome of classifying one reading. It is derived per call, never stored.
type Severity string

const (
	// SeverityOK means the value is inside both warning thresholds.
	SeverityOK Severity = "ok"

	// SeverityWarningLow means the value is within tolerance of the lower limit.
	SeverityWarningLow Severity = "warning_low"

	// SeverityWarningHigh means the value is within tolerance of the upper limit.
	SeverityWarningHigh Severity = "warning_high"

	// SeverityCriticalLow means the value is below the lower limit.
	SeverityCriticalLow Severity = "critical_low"

	// SeverityCriticalHigh means the value is above the upper limit.
	SeverityCriticalHigh Severity = "critical_high"
)

// Critical reports whether s is outside the hard limits.
func (s Severity) Critical() bool {
	return s == SeverityCriticalLow || s == SeverityCriticalHigh
}

// Warning reports whether s is inside the hard limits but near one of them.
func (s Severity) Warning() bool {
	return s == SeverityWarningLow || s == SeverityWarningHigh
}

// Vital names as used for message lookup.
const (
	Temperature      = "Temperature"
	PulseRate        = "Pulse Rate"
	OxygenSaturation = "Oxygen Saturation"
)

// Spec is a vital name with its hard limits.
type Spec struct {
	Name  string  `json:"name"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Clinical ranges used by VitalsOK.
var (
	TemperatureSpec      = Spec{Name: Temperature, Lower: 95, Upper: 102}      // °F
	PulseRateSpec        = Spec{Name: PulseRate, Lower: 60, Upper: 100}        // bpm
	OxygenSaturationSpec = Spec{Name: OxygenSaturation, Lower: 90, Upper: 100} // %
)

// Assessment is the side-effect free result of classifying one reading.
// Message is empty when Severity is SeverityOK.
type Assessment struct {
	Vital    string   `json:"vital"`
	Value    float64  `json:"value"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message,omitempty"`
}

// OK reports whether the reading is not critical. Warnings are still OK.
func (a Assessment) OK() bool {
	return !a.Severity.Critical()
}
