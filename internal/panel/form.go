package panel

import (
	"context"
	"fmt"
	"strings"

	"mailprov/pkg/browser"
	"mailprov/pkg/domain"
	"mailprov/pkg/logger"
	"mailprov/pkg/serrors"

	"go.uber.org/zap"
)

// FillCreateForm types the username and password and applies the optional
// settings. Only the username and password are required; every other step
// is logged and skipped when it fails.
func (p *panel) FillCreateForm(ctx context.Context, req domain.AccountRequest) (string, error) {
	ctx = logger.WithFields(ctx, zap.String("localPart", req.LocalPart))

	if err := within(ctx, p.options.WaitTimeout, "wait for username field", func(ctx context.Context) error {
		return p.driver.WaitVisible(ctx, usernameSel)
	}); err != nil {
		return "", err
	}
	if err := p.setValue(ctx, usernameSel, req.LocalPart); err != nil {
		return "", fmt.Errorf("could not fill username: %w", err)
	}

	selected := ""
	if req.Domain != "" && p.selectDomain(ctx, req.Domain) {
		selected = req.Domain
	}

	if err := p.markPassword(ctx); err != nil {
		return "", err
	}
	if err := p.setValue(ctx, passwordSel, req.Password); err != nil {
		return "", fmt.Errorf("could not fill password: %w", err)
	}

	p.showOptionalSettings(ctx)
	if p.options.Form.UnlimitedQuota {
		p.ensureChecked(ctx, unlimitedQuotaSel, true)
	}
	p.ensureChecked(ctx, welcomeEmailSel, p.options.Form.SendWelcomeEmail)
	p.ensureChecked(ctx, stayOnPageSel, p.options.Form.StayOnPage)

	// leaving the fields runs the application's validators
	for _, sel := range []string{usernameSel, passwordSel} {
		if err := within(ctx, keyTimeout, "blur "+sel, func(ctx context.Context) error {
			return p.driver.SendKeys(ctx, sel, browser.KeyTab)
		}); err != nil {
			logger.Debug(ctx, "could not leave field", zap.String("selector", sel), zap.Error(err))
		}
	}

	return p.resolveDomain(ctx, selected), nil
}

func (p *panel) setValue(ctx context.Context, sel, value string) error {
	var ok bool
	if err := p.driver.Evaluate(ctx, setValueScript(sel, value), &ok); err != nil {
		return err
	}
	if !ok {
		return serrors.With(serrors.ErrNotFound, "element %s not found", sel)
	}

	return nil
}

// selectDomain only touches the dropdown when the account owns more than one
// mail domain; with a single domain the panel does not render it. It reports
// whether domainName was selected, otherwise the form keeps its default domain.
func (p *panel) selectDomain(ctx context.Context, domainName string) bool {
	var count int
	if err := p.driver.Evaluate(ctx, mailDomainCountScript, &count); err != nil {
		logger.Warn(ctx, "could not read mail domains", zap.Error(err))

		return false
	}
	if count <= 1 {
		logger.Info(ctx, "domain dropdown not rendered, using the default domain",
			zap.Int("domains", count), zap.String("ignored", domainName))

		return false
	}

	var ok bool
	if err := p.driver.Evaluate(ctx, selectDomainScript(domainSelectSel, domainName), &ok); err != nil || !ok {
		logger.Warn(ctx, "could not select domain, using the default domain",
			zap.String("domain", domainName), zap.Error(err))

		return false
	}
	logger.Debug(ctx, "domain selected", zap.String("domain", domainName))

	return true
}

func (p *panel) markPassword(ctx context.Context) error {
	return p.until(ctx, p.options.WaitTimeout, func(ctx context.Context) (bool, error) {
		var ok bool
		err := p.driver.Evaluate(ctx, markPasswordScript(), &ok)

		return ok, err
	})
}

func (p *panel) showOptionalSettings(ctx context.Context) {
	panelState, err := p.state(ctx, optionalPanelSel)
	if err != nil || panelState.Exists {
		return
	}
	button, err := p.state(ctx, showOptionalSel)
	if err != nil || !button.Visible {
		return
	}
	if err := p.click(ctx, showOptionalSel); err != nil {
		logger.Warn(ctx, "could not expand optional settings", zap.Error(err))
	}
}

// ensureChecked clicks a checkbox or radio until its state matches want.
// Hidden or disabled inputs are left alone.
func (p *panel) ensureChecked(ctx context.Context, sel string, want bool) {
	st, err := p.state(ctx, sel)
	if err != nil {
		logger.Warn(ctx, "could not read option", zap.String("selector", sel), zap.Error(err))

		return
	}
	if !st.Exists || !st.Visible || !st.Enabled {
		logger.Debug(ctx, "option not available", zap.String("selector", sel))

		return
	}
	if st.Checked == want {
		return
	}
	if err := p.click(ctx, sel); err != nil {
		logger.Warn(ctx, "could not toggle option", zap.String("selector", sel), zap.Error(err))
	}
}

// resolveDomain returns the selected domain, or the default domain printed
// next to the username field.
func (p *panel) resolveDomain(ctx context.Context, override string) string {
	if override != "" {
		return override
	}

	var text string
	if err := p.driver.Evaluate(ctx, textScript(domainTextSel), &text); err != nil {
		logger.Warn(ctx, "could not read default domain", zap.Error(err))

		return ""
	}

	return strings.TrimPrefix(strings.TrimSpace(text), "@")
}
