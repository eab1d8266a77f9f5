// Package scraper fetches wikipast biography pages and extracts the
// dated event lines the checkers reason about.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"inferencebot/internal/wiki"
)

const defaultTimeout = 30 * time.Second

// Scraper fetches pages over HTTP and parses them into event records.
type Scraper struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithClient substitutes the HTTP client (tests, custom transports).
func WithClient(c *http.Client) Option {
	return func(s *Scraper) { s.client = c }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.client.Timeout = d }
}

// WithUserAgent sets the User-Agent header sent to the wiki.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) { s.userAgent = ua }
}

// New builds a scraper. A nil logger is replaced by a nop.
func New(logger *zap.Logger, opts ...Option) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scraper{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: "InferenceBot",
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches every URL in order and returns one PageRecord per
// page. A page that cannot be fetched or parsed is logged and skipped;
// the remaining pages still proceed.
func (s *Scraper) Scrape(ctx context.Context, urls []string) (*wiki.ScrapeResult, error) {
	res := &wiki.ScrapeResult{}
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := s.scrapePage(ctx, url)
		if err != nil {
			s.logger.Warn("page skipped", zap.String("url", url), zap.Error(err))
			continue
		}
		res.Data = append(res.Data, page)
	}
	return res, nil
}

func (s *Scraper) scrapePage(ctx context.Context, url string) (wiki.PageRecord, error) {
	body, err := s.fetch(ctx, url)
	if err != nil {
		return wiki.PageRecord{}, err
	}
	defer body.Close()

	page, err := parsePage(url, body, s.logger)
	if err != nil {
		return wiki.PageRecord{}, err
	}
	s.logger.Debug("page scraped",
		zap.String("url", url),
		zap.Int("births", len(page.Births)),
		zap.Int("deaths", len(page.Deaths)),
		zap.Int("encounters", len(page.Encounters)),
		zap.Int("positions", len(page.Positions)),
		zap.Int("elections", len(page.Elections)),
		zap.Int("weddings", len(page.Weddings)))
	return page, nil
}

func (s *Scraper) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch: unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
