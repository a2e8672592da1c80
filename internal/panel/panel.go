package panel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mailprov/internal/config"
	"mailprov/pkg/artifacts"
	"mailprov/pkg/browser"
	"mailprov/pkg/logger"
	"mailprov/pkg/poll"
	"mailprov/pkg/serrors"

	"go.uber.org/zap"
)

// Fixed sub-waits of the create flow.
const (
	loadingAppearTimeout    = 5 * time.Second
	loadingDisappearTimeout = 20 * time.Second
	formResetTimeout        = 10 * time.Second
	clickableTimeout        = 5 * time.Second
	angularProbeTimeout     = 10 * time.Second
	keyTimeout              = 5 * time.Second
	screenshotTimeout       = 10 * time.Second
)

// FormOptions are the optional settings applied to every new account.
type FormOptions struct {
	UnlimitedQuota   bool
	SendWelcomeEmail bool
	StayOnPage       bool
}

// Options configure the panel location, credentials and waits.
type Options struct {
	// URL is the login page.
	URL string
	// Username and Password are the panel credentials.
	Username string
	Password string
	// Theme is the theme path segment used in deep links.
	Theme string
	// Form holds the optional settings of the create form.
	Form FormOptions

	// WaitTimeout bounds login and element waits.
	WaitTimeout time.Duration
	// AngularReadyTimeout bounds the wait for the application to settle after navigation.
	AngularReadyTimeout time.Duration
	// ButtonReadyTimeout bounds the create button readiness probe.
	ButtonReadyTimeout time.Duration
	// ButtonDwell is how long the button must stay ready.
	ButtonDwell time.Duration
	// PollInterval is the delay between two probes.
	PollInterval time.Duration
	// CreateCycleTimeout bounds the loading panel wait after submitting.
	CreateCycleTimeout time.Duration
	// AfterSubmitTimeout bounds each post-submission check.
	AfterSubmitTimeout time.Duration
	// VerifyTimeout bounds the search for the new row.
	VerifyTimeout time.Duration
	// SubmitPause is the pause after pressing Enter in the password field.
	SubmitPause time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		URL:      cfg.Panel.URL,
		Username: cfg.Panel.Username,
		Password: cfg.Panel.Password,
		Theme:    cfg.Panel.Theme,
		Form: FormOptions{
			UnlimitedQuota:   cfg.Accounts.UnlimitedQuota,
			SendWelcomeEmail: cfg.Accounts.SendWelcomeEmail,
			StayOnPage:       cfg.Accounts.StayOnPage,
		},
		WaitTimeout:         cfg.Timeouts.Wait,
		AngularReadyTimeout: cfg.Timeouts.AngularReady,
		ButtonReadyTimeout:  cfg.Timeouts.ButtonReady,
		ButtonDwell:         cfg.Timeouts.ButtonDwell,
		PollInterval:        cfg.Timeouts.PollInterval,
		CreateCycleTimeout:  cfg.Timeouts.CreateCycle,
		AfterSubmitTimeout:  cfg.Timeouts.AfterSubmit,
		VerifyTimeout:       cfg.Timeouts.Verify,
		SubmitPause:         cfg.Timeouts.Settle,
	}
}

// panel is the concrete implementation of the Panel interface.
type panel struct {
	driver    browser.Driver
	artifacts *artifacts.Store
	options   Options
}

// New creates a Panel driving the given browser tab. Screenshots are written
// to store, which may be nil to disable them.
func New(driver browser.Driver, store *artifacts.Store, options Options) Panel {
	if options.Theme == "" {
		options.Theme = "jupiter"
	}
	if options.PollInterval <= 0 {
		options.PollInterval = 100 * time.Millisecond
	}

	return &panel{
		driver:    driver,
		artifacts: store,
		options:   options,
	}
}

// within runs fn with a context bounded by timeout and maps a timeout of that
// bound to ErrTimeout.
func within(ctx context.Context, timeout time.Duration, what string, fn func(ctx context.Context) error) error {
	bounded, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := fn(bounded)
	if err == nil {
		return nil
	}
	if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return serrors.Wrap(serrors.ErrTimeout, err, "%s: no result within %s", what, timeout)
	}

	return fmt.Errorf("%s: %w", what, err)
}

// until polls cond with the configured interval.
func (p *panel) until(ctx context.Context, timeout time.Duration, cond poll.Condition) error {
	return poll.Until(ctx, p.options.PollInterval, timeout, cond)
}

func (p *panel) state(ctx context.Context, sel string) (elementState, error) {
	var st elementState
	if err := p.driver.Evaluate(ctx, stateScript(sel), &st); err != nil {
		return elementState{}, err
	}

	return st, nil
}

// present polls until sel is in the DOM of the page or one of its frames.
func (p *panel) present(ctx context.Context, sel string, timeout time.Duration) error {
	return p.until(ctx, timeout, func(ctx context.Context) (bool, error) {
		st, err := p.state(ctx, sel)

		return st.Exists, err
	})
}

// click scrolls to sel and clicks it natively, falling back to a script click
// when the element never becomes clickable or the native click fails.
func (p *panel) click(ctx context.Context, sel string) error {
	_ = p.driver.Evaluate(ctx, scrollIntoViewScript(sel), nil)

	err := within(ctx, clickableTimeout, "click "+sel, func(ctx context.Context) error {
		if err := p.driver.WaitVisible(ctx, sel); err != nil {
			return err
		}

		return p.driver.Click(ctx, sel)
	})
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	logger.Debug(ctx, "native click failed, using script click", zap.String("selector", sel), zap.Error(err))

	var ok bool
	if err := p.driver.Evaluate(ctx, clickScript(sel), &ok); err != nil {
		return fmt.Errorf("could not click %s: %w", sel, err)
	}
	if !ok {
		return serrors.With(serrors.ErrNotFound, "element %s not found", sel)
	}

	return nil
}

// sleep pauses for d unless ctx is done first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// snapshot saves a screenshot of the current page. Failures are only logged.
func (p *panel) snapshot(ctx context.Context, name string) {
	if p.artifacts == nil {
		return
	}

	// still capture when ctx has just run out
	shotCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), screenshotTimeout)
	defer cancel()

	png, err := p.driver.Screenshot(shotCtx)
	if err != nil {
		logger.Warn(ctx, "could not capture screenshot", zap.String("name", name), zap.Error(err))

		return
	}
	path, err := p.artifacts.Save(name, png)
	if err != nil {
		logger.Warn(ctx, "could not save screenshot", zap.String("name", name), zap.Error(err))

		return
	}
	logger.Info(ctx, "screenshot saved", zap.String("path", path))
}

func (p *panel) Reload(ctx context.Context) error {
	return within(ctx, p.options.WaitTimeout, "reload", p.driver.Reload)
}
