package workers

import (
	"context"
	"log/slog"

	"soundscribe/contract"
	"soundscribe/domain"
)

// PresenceFanout drains voice presence events and broadcasts them to the
// registered sinks. Best-effort: no delivery, ordering or durability
// guarantees — presence is diagnostic data, never mixing input.
type PresenceFanout struct {
	log    *slog.Logger
	events <-chan domain.PresenceEvent
	sinks  []contract.PresenceSink
}

func NewPresenceFanout(log *slog.Logger, events <-chan domain.PresenceEvent, sinks ...contract.PresenceSink) *PresenceFanout {
	return &PresenceFanout{log: log, events: events, sinks: sinks}
}

func (w *PresenceFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			for _, s := range w.sinks {
				if err := s.Consume(ctx, evt); err != nil {
					w.log.Debug("Presence sink failed", "error", err)
				}
			}
		case <-ctx.Done():
			w.log.Debug("Context done, stopping presence fanout")
			return nil
		}
	}
}

// LogPresenceSink logs joins and leaves with their offset into the
// session, matching what the voice gateway reported.
type LogPresenceSink struct {
	Log *slog.Logger
}

func (s LogPresenceSink) Consume(_ context.Context, e domain.PresenceEvent) error {
	if e.Joined {
		s.Log.Debug("Participant joined voice channel", "participant", e.Participant, "offset", e.Offset)
	} else {
		s.Log.Debug("Participant left voice channel", "participant", e.Participant, "offset", e.Offset)
	}
	return nil
}
