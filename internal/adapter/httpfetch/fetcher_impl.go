// Package httpfetch downloads pages over plain HTTP with resty.
package httpfetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/internal/repository"
	"github.com/user/phytochem-crawler/pkg/pacer"
)

// ErrUnexpectedStatus is returned when the server answers with anything
// other than 200.
var ErrUnexpectedStatus = repository.ErrUnexpectedStatus

// Options configures a Fetcher.
type Options struct {
	Timeout    time.Duration
	Attempts   uint
	RetryDelay time.Duration
	UserAgent  string // empty rotates built-in agents
}

// Fetcher downloads pages with browser-like headers. Every attempt waits
// on the shared pacer first.
type Fetcher struct {
	client   *resty.Client
	pacer    *pacer.Pacer
	agents   *Agents
	attempts uint
	delay    time.Duration
	logger   *zap.Logger
}

// New creates a Fetcher.
func New(opts Options, p *pacer.Pacer, logger *zap.Logger) *Fetcher {
	if opts.Attempts == 0 {
		opts.Attempts = 1
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetHeaders(map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Connection":      "keep-alive",
	})

	f := &Fetcher{
		client:   client,
		pacer:    p,
		agents:   NewAgents(opts.UserAgent, time.Now().UnixNano()),
		attempts: opts.Attempts,
		delay:    opts.RetryDelay,
		logger:   logger,
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("User-Agent", f.agents.Next())
		if f.pacer == nil {
			return nil
		}
		return f.pacer.Wait(req.Context())
	})
	return f
}

// Fetch downloads url, retrying failed attempts. The error of the last
// attempt is returned once all attempts are used.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var body string
	err := retry.Do(
		func() error {
			resp, err := f.client.R().SetContext(ctx).Get(url)
			if f.pacer != nil {
				f.pacer.Done()
			}
			if err != nil {
				return err
			}
			if resp.StatusCode() != http.StatusOK {
				return fmt.Errorf("%w %d for %s", ErrUnexpectedStatus, resp.StatusCode(), url)
			}
			body = resp.String()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("page download failed",
				zap.String("url", url),
				zap.Uint("attempt", n+1),
				zap.Uint("attempts", f.attempts),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return "", err
	}
	return body, nil
}
