package cafes

import (
	"context"
	"fmt"
	"time"

	"cafe-scraper/config"
	"cafe-scraper/utils"
)

// Collector harvests the cafe page links from the directory's landing page.
// Every wait on the page is bounded; running out of time shrinks the result
// instead of failing the collection.
type Collector struct {
	cfg     *config.Config
	logger  *utils.Logger
	browser Browser
	pacer   *utils.Pacer
	retry   *utils.RetryConfig
}

// NewCollector creates a Collector driving browser.
func NewCollector(cfg *config.Config, logger *utils.Logger, browser Browser, pacer *utils.Pacer) *Collector {
	return &Collector{
		cfg:     cfg,
		logger:  logger,
		browser: browser,
		pacer:   pacer,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
			Sleep:       func(d time.Duration) { pacer.Wait("navigate retry", d) },
		},
	}
}

// Collect returns the listing links in page order: the initially visible
// cafes first, then the ones revealed by "load more".
func (c *Collector) Collect(ctx context.Context) ([]string, error) {
	err := c.retry.Do(ctx, "open-landing-page", func() error {
		return c.browser.Navigate(ctx, c.cfg.SiteURL)
	})
	if err != nil {
		return nil, fmt.Errorf("links: open %s: %w", c.cfg.SiteURL, err)
	}
	c.logger.Info("[links] Website %s opened", c.cfg.SiteURL)

	c.loadMore(ctx)
	c.waitForExpanded(ctx)

	page, err := c.browser.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("links: read page html: %w", err)
	}

	links, err := ExtractListingLinks(page, c.cfg.ListingPrefix, c.cfg.InitialContainerID, c.cfg.ExpandedContainerID)
	if err != nil {
		return nil, err
	}

	seen := utils.NewURLSet()
	for _, link := range links {
		seen.Add(link)
	}
	if seen.Duplicates() > 0 {
		c.logger.Warn("[links] %d duplicate cafe links kept as listed", seen.Duplicates())
	}
	c.logger.Info("[links] Collected %d cafe links (%d unique)", len(links), seen.Size())

	return links, nil
}

// loadMore clicks the "load more" control. If it cannot be clicked after
// scrolling to the bottom, it is scrolled into view and clicked once more.
func (c *Collector) loadMore(ctx context.Context) {
	id := c.cfg.LoadMoreID

	if err := c.withTimeout(ctx, func(ctx context.Context) error {
		return c.browser.WaitPresent(ctx, id)
	}); err != nil {
		c.logger.Warn("[links] No load more button found (%v), continuing with the initially visible cafes", err)
		return
	}

	if err := c.browser.ScrollToBottom(ctx); err != nil {
		c.logger.Debug("[links] scroll to bottom failed: %v", err)
	}
	c.pacer.Wait("after scroll", c.cfg.UIDelay)

	err := c.withTimeout(ctx, func(ctx context.Context) error {
		return c.browser.Click(ctx, id)
	})
	if err != nil {
		c.logger.Warn("[links] Load more button not clickable (%v), scrolling it into view", err)
		if err := c.browser.ScrollIntoView(ctx, id); err != nil {
			c.logger.Debug("[links] scroll into view failed: %v", err)
		}
		c.pacer.Wait("after scroll into view", c.cfg.UIDelay)

		err = c.withTimeout(ctx, func(ctx context.Context) error {
			return c.browser.Click(ctx, id)
		})
	}
	if err != nil {
		c.logger.Warn("[links] Load more button could not be clicked (%v), continuing with the initially visible cafes", err)
		return
	}

	c.logger.Info("[links] Load more cafes button clicked")
}

func (c *Collector) waitForExpanded(ctx context.Context) {
	if err := c.withTimeout(ctx, func(ctx context.Context) error {
		return c.browser.WaitPresent(ctx, c.cfg.ExpandedContainerID)
	}); err != nil {
		c.logger.Warn("[links] No other cafes loaded (%v)", err)
		return
	}
	c.logger.Info("[links] Additional cafes loaded")
}

func (c *Collector) withTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	if c.cfg.ElementTimeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ElementTimeout)
	defer cancel()
	return fn(ctx)
}
