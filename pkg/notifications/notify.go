package notifications

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Provider delivers a message to a single channel of a chat platform
type Provider interface {
	Send(ctx context.Context, channel string, msg Message) error
}

// ParseChannels splits a comma separated list of channel ids.
// Ids are trimmed, empty entries are dropped.
func ParseChannels(channels string) []string {
	parsed := []string{}
	for _, ch := range strings.Split(channels, ",") {
		ch = strings.TrimSpace(ch)
		if ch != "" {
			parsed = append(parsed, ch)
		}
	}
	return parsed
}

// Notify sends the message to every channel at once and waits for all sends.
// It fails if any of the sends fails. Messages already delivered to other
// channels are not retracted.
func Notify(ctx context.Context, provider Provider, msg Message, channels []string) error {
	var g errgroup.Group
	for _, channel := range channels {
		channel := strings.TrimSpace(channel)
		if channel == "" {
			continue
		}

		g.Go(func() error {
			err := provider.Send(ctx, channel, msg)
			if err != nil {
				return errors.Wrapf(err, "cannot notify %s", channel)
			}
			logrus.Debugf("notified %s", channel)
			return nil
		})
	}

	return g.Wait()
}
