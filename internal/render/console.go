package render

import (
	"context"
	"io"
	"os"
	"sync"
)

// Console renders alerts to a single sink. Alerts from concurrent callers are
// drawn one after another, never interleaved.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	delay DelayFunc
}

// NewConsole returns a Console writing to out and pausing with delay.
// A nil out means os.Stdout, a nil delay means Sleep.
func NewConsole(out io.Writer, delay DelayFunc) *Console {
	if out == nil {
		out = os.Stdout
	}
	if delay == nil {
		delay = Sleep
	}
	return &Console{out: out, delay: delay}
}

// Alert shows message for seconds. It holds the console for the whole blink sequence.
func (c *Console) Alert(_ context.Context, message string, seconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Show(c.out, message, seconds, c.delay)
}
