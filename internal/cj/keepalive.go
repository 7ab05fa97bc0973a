package cj

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Keepalive periodically runs the token guard so the long-lived CJ token is
// refreshed ahead of user traffic instead of on the first request after
// expiry.
type Keepalive struct {
	cron    *cron.Cron
	tokens  TokenProvider
	timeout time.Duration
	log     *slog.Logger
}

// NewKeepalive creates a Keepalive invoking the provider every interval.
func NewKeepalive(
	tokens TokenProvider,
	interval time.Duration,
	log *slog.Logger,
) (*Keepalive, error) {
	c := cron.New()

	k := &Keepalive{
		cron:    c,
		tokens:  tokens,
		timeout: 30 * time.Second,
		log:     log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), k.run); err != nil {
		return nil, err
	}

	return k, nil
}

// Start begins the scheduled token checks.
func (k *Keepalive) Start() {
	k.log.Info("token keepalive started")
	k.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for a running check to finish.
func (k *Keepalive) Stop() context.Context {
	k.log.Info("token keepalive stopping")
	return k.cron.Stop()
}

func (k *Keepalive) run() {
	ctx, cancel := context.WithTimeout(context.Background(), k.timeout)
	defer cancel()

	if _, err := k.tokens.Token(ctx); err != nil {
		k.log.Error("token keepalive check failed", "error", err)
		return
	}

	k.log.Debug("token keepalive check passed")
}
