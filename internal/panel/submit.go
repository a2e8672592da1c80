package panel

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"mailprov/pkg/browser"
	"mailprov/pkg/logger"
	"mailprov/pkg/poll"

	"go.uber.org/zap"
)

var createdPattern = regexp.MustCompile(`(?i)created`)

// Submit presses Enter in the password field, waits for the create button to
// settle and clicks it. A button that never settles is still clicked.
func (p *panel) Submit(ctx context.Context) error {
	if err := within(ctx, keyTimeout, "press enter", func(ctx context.Context) error {
		return p.driver.SendKeys(ctx, passwordSel, browser.KeyEnter)
	}); err != nil {
		logger.Debug(ctx, "could not press enter in password field", zap.Error(err))
	}
	if err := sleep(ctx, p.options.SubmitPause); err != nil {
		return err
	}

	if err := p.waitCreateButtonReady(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.logButtonDiagnostics(ctx, err)
	}

	if err := within(ctx, p.options.WaitTimeout, "wait for create button", func(ctx context.Context) error {
		return p.driver.WaitPresent(ctx, createButtonSel)
	}); err != nil {
		logger.Warn(ctx, "create button not present", zap.Error(err))
	}
	if err := p.click(ctx, createButtonSel); err != nil {
		return fmt.Errorf("could not click create button: %w", err)
	}

	return nil
}

// waitCreateButtonReady requires the button to stay clickable for the dwell
// period, so a button that flickers while the form validates is not clicked.
func (p *panel) waitCreateButtonReady(ctx context.Context) error {
	return poll.Stable(ctx, p.options.PollInterval, p.options.ButtonReadyTimeout, p.options.ButtonDwell,
		func(ctx context.Context) (bool, error) {
			st, err := p.state(ctx, createButtonSel)

			return st.clickable(), err
		})
}

func (p *panel) logButtonDiagnostics(ctx context.Context, cause error) {
	var d buttonDiagnostics
	if err := p.driver.Evaluate(ctx, diagnosticsScript(), &d); err != nil {
		logger.Warn(ctx, "create button not ready and diagnostics failed",
			zap.NamedError("cause", cause), zap.Error(err))

		return
	}

	logger.Warn(ctx, "create button not ready, forcing click",
		zap.NamedError("cause", cause),
		zap.Bool("exists", d.Exists),
		zap.Bool("visible", d.Visible),
		zap.Bool("disabled", d.Disabled),
		zap.Bool("pointerNone", d.PointerNone),
		zap.String("outerHTML", d.OuterHTML),
		zap.String("overlayDisplay", d.OverlayDisplay),
		zap.String("overlayOpacity", d.OverlayOpacity),
		zap.String("hash", d.Hash),
		zap.String("alerts", d.Alerts))
}

// WaitCreateCycle waits for the loading panel to come and go, then looks for
// a confirmation: a reset username field or a "created" alert.
func (p *panel) WaitCreateCycle(ctx context.Context) bool {
	if err := p.waitLoadingPanel(ctx, loadingAppearTimeout, p.options.CreateCycleTimeout); err != nil {
		return false
	}

	var username elementState
	err := p.until(ctx, formResetTimeout, func(ctx context.Context) (bool, error) {
		st, err := p.state(ctx, usernameSel)
		username = st

		return st.Visible, err
	})
	if err == nil && strings.TrimSpace(username.Value) == "" {
		logger.Debug(ctx, "create form was reset")

		return true
	}
	if ctx.Err() != nil {
		return false
	}

	if alerts := p.alerts(ctx); createdPattern.MatchString(alerts) {
		logger.Debug(ctx, "create confirmed by alert", zap.String("alerts", alerts))

		return true
	}

	p.snapshot(ctx, "after_create_unclear.png")

	return false
}

// WaitAfterSubmit checks that the list route or the accounts table is reachable.
func (p *panel) WaitAfterSubmit(ctx context.Context) bool {
	err := p.until(ctx, p.options.AfterSubmitTimeout, func(ctx context.Context) (bool, error) {
		var hash string
		err := p.driver.Evaluate(ctx, locationHashScript, &hash)

		return strings.HasPrefix(hash, "#/list"), err
	})
	if err == nil {
		return true
	}
	if ctx.Err() != nil {
		return false
	}

	if err := p.present(ctx, accountsTableSel, p.options.AfterSubmitTimeout); err == nil {
		return true
	}
	if ctx.Err() != nil {
		return false
	}

	p.snapshot(ctx, "after_submit_unknown.png")

	return false
}

func (p *panel) alerts(ctx context.Context) string {
	var text string
	if err := p.driver.Evaluate(ctx, textScript(alertListSel), &text); err != nil {
		logger.Debug(ctx, "could not read alerts", zap.Error(err))

		return ""
	}

	return text
}
