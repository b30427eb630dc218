package api

import (
	"context"

	"github.com/rs/zerolog/log"
)

// publishEvent fires a lifecycle event. Events are best-effort: a nil bus is
// a no-op, and publish failures are logged but never surfaced to the client.
func (a *API) publishEvent(ctx context.Context, subject string, payload map[string]any) {
	if a.bus == nil || subject == "" {
		return
	}
	if err := a.bus.Publish(ctx, subject, payload); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("publish event")
	}
}
