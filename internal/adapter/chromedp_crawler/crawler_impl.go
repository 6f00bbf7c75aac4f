package chromedp_crawler

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/internal/repository"
	"github.com/user/phytochem-crawler/pkg/pacer"
)

// Options configures a ChromedpCrawler.
type Options struct {
	PageLoadTimeout time.Duration
	Attempts        uint
	RetryDelay      time.Duration
	UserAgent       string
}

// ChromedpCrawler fetches pages through headless Chrome, for sites that
// only render their content with JavaScript.
type ChromedpCrawler struct {
	allocatorPool *sync.Pool
	cancels       []context.CancelFunc
	mu            sync.Mutex

	timeout  time.Duration
	attempts uint
	delay    time.Duration
	pacer    *pacer.Pacer
	logger   *zap.Logger
}

// NewChromedpCrawler creates a new fetcher implementation using chromedp.
func NewChromedpCrawler(opts Options, p *pacer.Pacer, logger *zap.Logger) *ChromedpCrawler {
	if opts.Attempts == 0 {
		opts.Attempts = 1
	}
	c := &ChromedpCrawler{
		timeout:  opts.PageLoadTimeout,
		attempts: opts.Attempts,
		delay:    opts.RetryDelay,
		pacer:    p,
		logger:   logger,
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	c.allocatorPool = &sync.Pool{
		New: func() any {
			allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
			c.mu.Lock()
			c.cancels = append(c.cancels, cancel)
			c.mu.Unlock()
			return allocCtx
		},
	}
	return c
}

// Fetch loads url in a fresh tab and returns the rendered document.
func (c *ChromedpCrawler) Fetch(ctx context.Context, url string) (string, error) {
	var html string
	err := retry.Do(
		func() error {
			if c.pacer != nil {
				if err := c.pacer.Wait(ctx); err != nil {
					return retry.Unrecoverable(err)
				}
			}
			var err error
			html, err = c.render(ctx, url)
			if c.pacer != nil {
				c.pacer.Done()
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("browser page load failed",
				zap.String("url", url),
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

func (c *ChromedpCrawler) render(ctx context.Context, url string) (string, error) {
	allocCtx := c.allocatorPool.Get().(context.Context)
	defer c.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(c.logger.Sugar().Debugf))
	defer cancel()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, c.timeout)
	defer cancelTimeout()

	// Stop the tab when the caller gives up.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	start := time.Now()
	resp, err := chromedp.RunResponse(taskCtx, chromedp.Navigate(url))
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	if err := checkStatus(resp, url); err != nil {
		return "", err
	}
	err = chromedp.Run(taskCtx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	c.logger.Debug("page rendered", zap.String("url", url), zap.Duration("took", time.Since(start)))
	return html, nil
}

// checkStatus fails navigations the server did not answer with 200. A nil
// response means the navigation did not hit the network.
func checkStatus(resp *network.Response, url string) error {
	if resp == nil || resp.Status == http.StatusOK {
		return nil
	}
	return fmt.Errorf("%w %d for %s", repository.ErrUnexpectedStatus, resp.Status, url)
}

// Close shuts down every browser the fetcher started.
func (c *ChromedpCrawler) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
}
