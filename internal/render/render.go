// Package render draws timed alerts on a terminal-style sink: the message on
// its own line, then a two-frame marker that blinks once per second.
package render

import (
	"context"
	"io"
	"time"
)

const (
	frameLeft  = "\r* "
	frameRight = "\r *"
)

// DelayFunc pauses for the given number of seconds. Tests pass a recorder,
// production passes Sleep or SleepContext.
type DelayFunc func(seconds int) error

// Sleep blocks on the wall clock.
func Sleep(seconds int) error {
	time.Sleep(time.Duration(seconds) * time.Second)
	return nil
}

// SleepContext returns a DelayFunc that returns early with ctx.Err() once ctx is done.
func SleepContext(ctx context.Context) DelayFunc {
	return func(seconds int) error {
		t := time.NewTimer(time.Duration(seconds) * time.Second)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

type flusher interface {
	Flush() error
}

// Show writes message and a blink sequence lasting seconds delay-seconds.
// For n seconds the output is "<message>\n", then n/2 "\r* "+"\r *" cycles,
// then one trailing "\r* " when n is odd. Every frame is followed by one
// delay(1) call. Non-positive durations print the message only.
// Sink and delay errors are returned as-is.
func Show(w io.Writer, message string, seconds int, delay DelayFunc) error {
	if _, err := io.WriteString(w, message+"\n"); err != nil {
		return err
	}
	if seconds <= 0 {
		return nil
	}

	for range seconds / 2 {
		if err := frame(w, frameLeft, delay); err != nil {
			return err
		}
		if err := frame(w, frameRight, delay); err != nil {
			return err
		}
	}
	if seconds%2 == 1 {
		return frame(w, frameLeft, delay)
	}
	return nil
}

func frame(w io.Writer, marker string, delay DelayFunc) error {
	if _, err := io.WriteString(w, marker); err != nil {
		return err
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	return delay(1)
}
