// Package monitor hosts the vitals engine for long-running processes. It owns
// the alert queue that keeps callers from waiting on a blink sequence, and the
// Service that turns readings into check results.
package monitor
