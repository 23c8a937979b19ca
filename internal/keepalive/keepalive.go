// Package keepalive pings the service on a cron schedule so idle hosting
// platforms do not put it to sleep.
package keepalive

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

type Pinger struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewPinger(url string, logger ...*zap.Logger) *Pinger {
	l := zap.L().Named("keepalive")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("keepalive")
	}
	return &Pinger{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
		logger: l,
	}
}

func (p *Pinger) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("keepalive: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Start schedules Ping and starts the scheduler. It returns nil when no URL
// is configured. Callers stop the returned scheduler on shutdown.
func Start(schedule, url string, logger *zap.Logger) (*cron.Cron, error) {
	if url == "" {
		return nil, nil
	}

	p := NewPinger(url, logger)
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := p.Ping(context.Background()); err != nil {
			p.logger.Warn("keepalive ping failed", zap.String("url", url), zap.Error(err))
			return
		}
		p.logger.Debug("keepalive ping ok", zap.String("url", url))
	})
	if err != nil {
		return nil, fmt.Errorf("keepalive: invalid schedule %q: %w", schedule, err)
	}

	c.Start()
	p.logger.Info("keepalive scheduled", zap.String("schedule", schedule), zap.String("url", url))
	return c, nil
}
