package notifications

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// ConsoleProvider prints messages instead of sending them. Used for dry runs.
type ConsoleProvider struct {
	Out io.Writer

	mu sync.Mutex
}

func (c *ConsoleProvider) Send(ctx context.Context, channel string, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.Out, "%s\n%s\n", color.New(color.FgCyan, color.Bold).Sprintf("#%s", channel), msg.AsText())
	return err
}
