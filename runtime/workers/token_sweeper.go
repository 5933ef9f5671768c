package workers

import (
	"context"
	"log/slog"
	"time"
)

// TokenStore is the slice of the download server the sweeper needs.
type TokenStore interface {
	Sweep() int
}

// TokenSweeper purges expired download tokens on a fixed interval, on top
// of the lazy purges done at redemption and link creation. It keeps the
// health endpoint's token count from drifting when no links are minted.
type TokenSweeper struct {
	log      *slog.Logger
	store    TokenStore
	interval time.Duration
}

func NewTokenSweeper(log *slog.Logger, store TokenStore, interval time.Duration) *TokenSweeper {
	return &TokenSweeper{log: log, store: store, interval: interval}
}

func (w *TokenSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if swept := w.store.Sweep(); swept > 0 {
				w.log.Debug("Swept expired download tokens", "count", swept)
			}
		}
	}
}
