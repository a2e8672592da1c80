// Package cdp implements browser.Driver on top of chromedp, attached to an
// already running browser through its remote DevTools endpoint.
package cdp

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"mailprov/pkg/browser"
	"mailprov/pkg/logger"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Options configure the connection to the remote browser.
type Options struct {
	// URL is the DevTools endpoint, e.g. http://s-chromium:9222 or ws://127.0.0.1:9222.
	URL string
	// ConnectRetries is how many times the endpoint is probed before giving up.
	ConnectRetries int
	// ConnectRetryWait is the pause between two probes.
	ConnectRetryWait time.Duration
	// HTTPClient is used for the endpoint probe. A default client is used when nil.
	HTTPClient *resty.Client
	// ViewportWidth and ViewportHeight fix the tab size so screenshots are
	// comparable across runs. Zero keeps the browser's default.
	ViewportWidth  int64
	ViewportHeight int64
}

// Driver is a browser.Driver bound to a single tab of a remote browser.
type Driver struct {
	tab         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	closeOnce   sync.Once
}

// Connect waits for the endpoint, attaches to the browser and opens a new tab.
// The returned driver must be closed with Close.
func Connect(ctx context.Context, options Options) (*Driver, error) {
	client := options.HTTPClient
	if client == nil {
		client = resty.New().SetTimeout(5 * time.Second)
	}
	if _, err := WaitEndpoint(ctx, client, options.URL, options.ConnectRetries, options.ConnectRetryWait); err != nil {
		return nil, err
	}

	// the allocator and the tab outlive ctx: they are released by Close only
	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(context.WithoutCancel(ctx), options.URL)
	sugar := logger.Get(ctx).Sugar()
	tab, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(sugar.Debugf),
		chromedp.WithErrorf(sugar.Errorf),
	)

	// the first Run allocates the browser connection and the target
	if err := chromedp.Run(tab, viewport(options.ViewportWidth, options.ViewportHeight)); err != nil {
		cancelTab()
		cancelAlloc()

		return nil, fmt.Errorf("could not attach to browser: %w", err)
	}

	logger.Info(ctx, "attached to remote browser", zap.String("endpoint", options.URL))

	return &Driver{tab: tab, cancelTab: cancelTab, cancelAlloc: cancelAlloc}, nil
}

func viewport(width, height int64) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if width <= 0 || height <= 0 {
			return nil
		}
		if err := emulation.SetDeviceMetricsOverride(width, height, 1.0, false).Do(ctx); err != nil {
			return fmt.Errorf("could not set viewport: %w", err)
		}

		return nil
	})
}

// run executes actions on the tab, bounded by the deadline and cancellation of ctx.
func (d *Driver) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(d.tab)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		return err
	}

	return nil
}

// Navigate loads url. A change of the fragment only is applied through
// location.hash since such navigations never fire a load event.
func (d *Driver) Navigate(ctx context.Context, target string) error {
	var current string
	if err := d.run(ctx, chromedp.Location(&current)); err == nil && SameDocument(current, target) {
		u, _ := url.Parse(target)
		if err := d.run(ctx, chromedp.Evaluate(fmt.Sprintf("window.location.hash = %q", "#"+u.Fragment), nil)); err != nil {
			return fmt.Errorf("could not change location hash: %w", err)
		}

		return nil
	}

	if err := d.run(ctx, chromedp.Navigate(target)); err != nil {
		return fmt.Errorf("could not navigate: %w", err)
	}

	return nil
}

func (d *Driver) Reload(ctx context.Context) error {
	if err := d.run(ctx, chromedp.Reload()); err != nil {
		return fmt.Errorf("could not reload: %w", err)
	}

	return nil
}

func (d *Driver) Location(ctx context.Context) (string, error) {
	var location string
	if err := d.run(ctx, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("could not get location: %w", err)
	}

	return location, nil
}

func (d *Driver) Evaluate(ctx context.Context, expression string, res any) error {
	if err := d.run(ctx, chromedp.Evaluate(expression, res)); err != nil {
		return fmt.Errorf("could not evaluate script: %w", err)
	}

	return nil
}

func (d *Driver) WaitPresent(ctx context.Context, sel string) error {
	return d.run(ctx, chromedp.WaitReady(sel, chromedp.ByQuery))
}

func (d *Driver) WaitVisible(ctx context.Context, sel string) error {
	return d.run(ctx, chromedp.WaitVisible(sel, chromedp.ByQuery))
}

func (d *Driver) WaitNotVisible(ctx context.Context, sel string) error {
	return d.run(ctx, chromedp.WaitNotVisible(sel, chromedp.ByQuery))
}

func (d *Driver) SendKeys(ctx context.Context, sel, keys string) error {
	if err := d.run(ctx, chromedp.SendKeys(sel, keys, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("could not send keys to %s: %w", sel, err)
	}

	return nil
}

func (d *Driver) Click(ctx context.Context, sel string) error {
	if err := d.run(ctx, chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
		return fmt.Errorf("could not click %s: %w", sel, err)
	}

	return nil
}

func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := d.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return nil, fmt.Errorf("could not capture screenshot: %w", err)
	}

	return buf, nil
}

// Close closes the tab and drops the connection. The remote browser itself
// keeps running. Calling Close more than once is safe.
func (d *Driver) Close(ctx context.Context) error {
	var err error
	d.closeOnce.Do(func() {
		// with a remote allocator only the tab is closed, never the browser
		err = chromedp.Cancel(d.tab)
		d.cancelTab()
		d.cancelAlloc()
		logger.Debug(ctx, "browser tab closed")
	})
	if err != nil {
		return fmt.Errorf("could not close tab: %w", err)
	}

	return nil
}

// SameDocument reports whether b only differs from a by its fragment, and
// does carry one.
func SameDocument(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil || ub.Fragment == "" {
		return false
	}
	ua.Fragment, ub.Fragment = "", ""
	ua.RawFragment, ub.RawFragment = "", ""

	return ua.String() == ub.String()
}

var _ browser.Driver = (*Driver)(nil)
