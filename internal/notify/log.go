package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogChannel writes every notification to the service log. It doubles as the
// in-app delivery record and keeps notifications observable when no other
// channel is configured.
type LogChannel struct {
	log zerolog.Logger
}

func NewLogChannel(log zerolog.Logger) *LogChannel {
	return &LogChannel{log: log}
}

func (c *LogChannel) Deliver(_ context.Context, rcpt Recipient, kind Kind, payload Payload) error {
	evt := c.log.Info().
		Str("kind", string(kind)).
		Str("email", rcpt.Email).
		Str("event_id", payload.EventID).
		Str("title", payload.Title)
	if payload.StartAt != nil {
		evt = evt.Time("start_at", *payload.StartAt)
	}
	evt.Msg("notification")
	return nil
}
