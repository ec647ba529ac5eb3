// Package vitals classifies physiological readings against safe ranges.
// The Engine picks a severity and a language-specific message for each
// reading and hands warning and critical messages to an Alerter.
package vitals
