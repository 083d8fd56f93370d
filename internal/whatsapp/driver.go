package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ykarmi/kinderbell/internal"
)

// ErrWaitTimeout is returned by waitAny when no condition is satisfied
// within the bounded wait
var ErrWaitTimeout = errors.New("timed out waiting for UI surface")

// condition names a UI surface to wait for
type condition struct {
	name     string
	selector string
}

// driver abstracts the browser so the state machine can run against a
// scripted double in tests. The production implementation is chromedp.
type driver interface {
	Start(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	// WaitAny polls the named conditions and returns the name of whichever
	// is satisfied first, or ErrWaitTimeout
	WaitAny(ctx context.Context, conds []condition, timeout time.Duration) (string, error)
	Click(ctx context.Context, selector string) error
	SendKeys(ctx context.Context, selector, text string) error
	PressKey(ctx context.Context, key string) error
	Sleep(d time.Duration)
	Stop() error
}

const (
	keyEnter  = "\r"
	keyEscape = "\u001b"

	waitPollInterval = 250 * time.Millisecond
)

// chromeDriver drives a real Chrome instance. The persistent user-data-dir
// keeps the authenticated WhatsApp Web session between runs, so the QR
// ceremony only happens once.
type chromeDriver struct {
	cfg internal.WhatsAppConfig

	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
	browserCtx    context.Context
}

func newChromeDriver(cfg internal.WhatsAppConfig) *chromeDriver {
	return &chromeDriver{cfg: cfg}
}

func (d *chromeDriver) Start(ctx context.Context) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(d.cfg.UserDataDir),
		chromedp.Flag("headless", d.cfg.Headless),
		chromedp.WindowSize(1280, 720),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Force browser startup now so launch failures surface here
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	d.allocCancel = allocCancel
	d.browserCancel = browserCancel
	d.browserCtx = browserCtx
	return nil
}

func (d *chromeDriver) Navigate(ctx context.Context, url string) error {
	return chromedp.Run(d.browserCtx, chromedp.Navigate(url))
}

func (d *chromeDriver) WaitAny(ctx context.Context, conds []condition, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		for _, c := range conds {
			var present bool
			script := fmt.Sprintf("document.querySelector(%q) !== null", c.selector)
			if err := chromedp.Run(d.browserCtx, chromedp.Evaluate(script, &present)); err != nil {
				return "", err
			}
			if present {
				return c.name, nil
			}
		}
		if time.Now().After(deadline) {
			return "", ErrWaitTimeout
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(waitPollInterval):
		}
	}
}

func (d *chromeDriver) Click(ctx context.Context, selector string) error {
	return chromedp.Run(d.browserCtx, chromedp.Click(selector, chromedp.ByQuery))
}

func (d *chromeDriver) SendKeys(ctx context.Context, selector, text string) error {
	return chromedp.Run(d.browserCtx, chromedp.SendKeys(selector, text, chromedp.ByQuery))
}

func (d *chromeDriver) PressKey(ctx context.Context, key string) error {
	return chromedp.Run(d.browserCtx, chromedp.KeyEvent(key))
}

func (d *chromeDriver) Sleep(duration time.Duration) {
	time.Sleep(duration)
}

func (d *chromeDriver) Stop() error {
	if d.browserCancel != nil {
		d.browserCancel()
		d.browserCancel = nil
	}
	if d.allocCancel != nil {
		d.allocCancel()
		d.allocCancel = nil
	}
	d.browserCtx = nil
	return nil
}
