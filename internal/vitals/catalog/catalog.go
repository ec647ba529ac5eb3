// Package catalog provides the built-in English and German alert messages
// behind the vitals.Catalog interface.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/linnemanlabs/vitalwatch/internal/vitals"
)

// aliases maps legacy tags that language.Parse does not know to a supported base.
var aliases = map[string]string{
	"ger": "de",
	"deu": "de",
	"eng": "en",
}

var builtin = map[string]map[string]vitals.Messages{
	"en": {
		vitals.Temperature: {
			Critical:    "Temperature critical!",
			WarningLow:  "Approaching hypothermia",
			WarningHigh: "Approaching hyperthermia",
		},
		vitals.PulseRate: {
			Critical:    "Pulse Rate is out of range!",
			WarningLow:  "Approaching bradycardia",
			WarningHigh: "Approaching tachycardia",
		},
		vitals.OxygenSaturation: {
			Critical:    "Oxygen Saturation out of range!",
			WarningLow:  "Approaching hypoxemia",
			WarningHigh: "Approaching hyperoxia",
		},
	},
	"de": {
		vitals.Temperature: {
			Critical:    "Temperatur kritisch!",
			WarningLow:  "Annäherung an Unterkühlung",
			WarningHigh: "Annäherung an Überhitzung",
		},
		vitals.PulseRate: {
			Critical:    "Pulsfrequenz außerhalb des Bereichs!",
			WarningLow:  "Annäherung an Bradykardie",
			WarningHigh: "Annäherung an Tachykardie",
		},
		vitals.OxygenSaturation: {
			Critical:    "Sauerstoffsättigung außerhalb des Bereichs!",
			WarningLow:  "Annäherung an Hypoxämie",
			WarningHigh: "Annäherung an Hyperoxie",
		},
	},
}

// Static is an immutable in-memory catalog keyed by base language.
type Static struct {
	table map[string]map[string]vitals.Messages
}

// New returns the built-in catalog.
func New() *Static {
	return &Static{table: builtin}
}

// NewStatic builds a catalog from table, keyed by language tag then vital name.
// Tags are canonicalized; the table is copied.
func NewStatic(table map[string]map[string]vitals.Messages) (*Static, error) {
	out := make(map[string]map[string]vitals.Messages, len(table))
	for tag, byVital := range table {
		base, err := Canonical(tag)
		if err != nil {
			return nil, err
		}
		if _, dup := out[base]; dup {
			return nil, fmt.Errorf("catalog: duplicate language %q (canonical %q)", tag, base)
		}
		out[base] = maps.Clone(byVital)
	}
	return &Static{table: out}, nil
}

// Canonical reduces a language tag to its base language, e.g. "de-AT" and "ger" both become "de".
func Canonical(tag string) (string, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return "", fmt.Errorf("catalog: empty language tag: %w", vitals.ErrMissingTranslation)
	}
	if a, ok := aliases[tag]; ok {
		return a, nil
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("catalog: invalid language tag %q: %w", tag, errors.Join(err, vitals.ErrMissingTranslation))
	}
	base, _ := t.Base()
	return base.String(), nil
}

// Messages implements vitals.Catalog.
func (s *Static) Messages(lang, vital string) (vitals.Messages, error) {
	base, err := Canonical(lang)
	if err != nil {
		return vitals.Messages{}, err
	}
	byVital, ok := s.table[base]
	if !ok {
		return vitals.Messages{}, fmt.Errorf("catalog: language %q: %w", lang, vitals.ErrMissingTranslation)
	}
	m, ok := byVital[vital]
	if !ok {
		return vitals.Messages{}, fmt.Errorf("catalog: vital %q in language %q: %w", vital, lang, vitals.ErrMissingTranslation)
	}
	return m, nil
}

// Languages returns the supported base languages, sorted.
func (s *Static) Languages() []string {
	return slices.Sorted(maps.Keys(s.table))
}

// Validate checks that lang has a complete message set for every vital in names.
func (s *Static) Validate(lang string, names ...string) error {
	var errs []error
	for _, name := range names {
		m, err := s.Messages(lang, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if m.Critical == "" || m.WarningLow == "" || m.WarningHigh == "" {
			errs = append(errs, fmt.Errorf("catalog: incomplete messages for %q in %q: %w", name, lang, vitals.ErrMissingTranslation))
		}
	}
	return errors.Join(errs...)
}
