// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"fittrack/internal/logging"
	"fittrack/internal/metrics"
)

const purgeTimeout = time.Minute

// SessionPurger deletes expired sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) error
}

// SessionCleaner periodically purges expired sessions.
type SessionCleaner struct {
	purger   SessionPurger
	cron     *cron.Cron
	interval time.Duration
}

// NewSessionCleaner creates a cleaner that runs every interval.
func NewSessionCleaner(purger SessionPurger, interval time.Duration) *SessionCleaner {
	return &SessionCleaner{
		purger:   purger,
		cron:     cron.New(),
		interval: interval,
	}
}

// Start registers the job and starts the scheduler.
func (c *SessionCleaner) Start() error {
	if c.interval <= 0 {
		return fmt.Errorf("session cleanup interval must be positive, got %s", c.interval)
	}
	if _, err := c.cron.AddFunc("@every "+c.interval.String(), c.purge); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	c.cron.Start()
	logging.Info().Dur("interval", c.interval).Msg("session cleaner started")
	return nil
}

// Stop stops the scheduler and waits for a running purge to finish.
func (c *SessionCleaner) Stop() {
	<-c.cron.Stop().Done()
	logging.Info().Msg("session cleaner stopped")
}

func (c *SessionCleaner) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	if err := c.purger.PurgeExpiredSessions(ctx); err != nil {
		logging.Error().Err(err).Msg("failed to purge expired sessions")
		return
	}
	metrics.SessionsPurged.Inc()
	logging.Debug().Msg("expired sessions purged")
}
