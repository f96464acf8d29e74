package cafes

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/chromedp/chromedp"

	"cafe-scraper/config"
	"cafe-scraper/utils"
)

// ChromeBrowser drives a single headless Chrome tab through chromedp.
type ChromeBrowser struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// NewChromeBrowser launches Chrome and opens one tab. Failing to start the
// browser is fatal for link collection, so the error is returned as-is.
func NewChromeBrowser(cfg *config.Config, logger *utils.Logger) (*ChromeBrowser, error) {
	chromeBin := cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[links] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(config.BrowserUserAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	// The first Run starts the browser.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("links: start browser: %w", err)
	}

	return &ChromeBrowser{ctx: tabCtx, cancelTab: cancelTab, cancelAlloc: cancelAlloc}, nil
}

func (b *ChromeBrowser) Navigate(ctx context.Context, url string) error {
	return b.run(ctx, chromedp.Navigate(url))
}

func (b *ChromeBrowser) WaitPresent(ctx context.Context, id string) error {
	return b.run(ctx, chromedp.WaitReady("#"+id, chromedp.ByQuery))
}

func (b *ChromeBrowser) ScrollToBottom(ctx context.Context) error {
	return b.run(ctx, chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight);`, nil))
}

func (b *ChromeBrowser) ScrollIntoView(ctx context.Context, id string) error {
	script := fmt.Sprintf(`document.getElementById(%q).scrollIntoView({ behavior: 'smooth' });`, id)
	return b.run(ctx, chromedp.Evaluate(script, nil))
}

func (b *ChromeBrowser) Click(ctx context.Context, id string) error {
	return b.run(ctx, chromedp.Click("#"+id, chromedp.ByQuery, chromedp.NodeVisible))
}

func (b *ChromeBrowser) HTML(ctx context.Context) (string, error) {
	var page string
	if err := b.run(ctx, chromedp.OuterHTML("html", &page, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return page, nil
}

// Close shuts down the tab and the browser process.
func (b *ChromeBrowser) Close() {
	b.cancelTab()
	b.cancelAlloc()
}

// run executes actions in the browser tab while honouring the deadline and
// cancellation of ctx. Cancelling a context derived from the tab aborts the
// actions without closing the tab.
func (b *ChromeBrowser) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(b.ctx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
