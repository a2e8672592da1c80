package panel

import (
	"context"
	"fmt"
	"time"

	"mailprov/pkg/domain"
	"mailprov/pkg/logger"
	"mailprov/pkg/serrors"

	"go.uber.org/zap"
)

func (p *panel) listURL(token domain.SessionToken) string {
	return token.Route(fmt.Sprintf(listRoute, p.options.Theme))
}

func (p *panel) createURL(token domain.SessionToken) string {
	return token.Route(fmt.Sprintf(createRoute, p.options.Theme))
}

// OpenAccountsList opens the list view and waits for the table or the create button.
func (p *panel) OpenAccountsList(ctx context.Context, token domain.SessionToken) error {
	if err := p.open(ctx, p.listURL(token)); err != nil {
		return err
	}

	err := p.until(ctx, p.options.WaitTimeout, func(ctx context.Context) (bool, error) {
		table, err := p.state(ctx, accountsTableSel)
		if err != nil || table.Exists {
			return table.Exists, err
		}
		button, err := p.state(ctx, createButtonSel)

		return button.clickable(), err
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.snapshot(ctx, "email_list_missing.png")

		return serrors.Wrap(serrors.ErrNotFound, err, "accounts list did not render")
	}
	p.snapshot(ctx, "01_email_list.png")

	return nil
}

// OpenCreateForm opens the create view and waits for the username field.
func (p *panel) OpenCreateForm(ctx context.Context, token domain.SessionToken) error {
	if err := p.open(ctx, p.createURL(token)); err != nil {
		return err
	}

	if err := p.waitLoadingPanel(ctx, loadingAppearTimeout, loadingDisappearTimeout); err != nil {
		return err
	}

	if err := within(ctx, p.options.WaitTimeout, "wait for create form", func(ctx context.Context) error {
		return p.driver.WaitVisible(ctx, usernameSel)
	}); err != nil {
		return err
	}
	p.snapshot(ctx, "02_create_form.png")

	return nil
}

// open navigates to url and waits for the application to settle.
func (p *panel) open(ctx context.Context, url string) error {
	logger.Debug(ctx, "navigating", zap.String("url", url))

	if err := within(ctx, p.options.WaitTimeout, "navigate", func(ctx context.Context) error {
		return p.driver.Navigate(ctx, url)
	}); err != nil {
		return err
	}

	return p.waitAngular(ctx)
}

// waitAngular waits for the view container, then for the application's HTTP
// queue to drain. Only a missing view container is an error.
func (p *panel) waitAngular(ctx context.Context) error {
	if err := p.present(ctx, viewContentSel, p.options.AngularReadyTimeout); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		return serrors.Wrap(serrors.ErrNotFound, err, "application view did not render")
	}

	err := p.until(ctx, angularProbeTimeout, func(ctx context.Context) (bool, error) {
		var ok bool
		err := p.driver.Evaluate(ctx, angularPresentScript, &ok)

		return ok, err
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Debug(ctx, "angular not detected, skipping idle wait")

		return nil
	}

	err = p.until(ctx, p.options.AngularReadyTimeout, func(ctx context.Context) (bool, error) {
		var idle bool
		err := p.driver.Evaluate(ctx, angularIdleScript, &idle)

		return idle, err
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn(ctx, "application still has pending requests, continuing", zap.Error(err))
	}

	return nil
}

// waitLoadingPanel tolerates the create loading panel: it may show up within
// appear and then has up to disappear to go away. Neither wait is an error.
func (p *panel) waitLoadingPanel(ctx context.Context, appear, disappear time.Duration) error {
	err := p.until(ctx, appear, func(ctx context.Context) (bool, error) {
		st, err := p.state(ctx, loadingPanelSel)

		return st.Visible, err
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Debug(ctx, "loading panel did not show up")
	}

	err = p.until(ctx, disappear, func(ctx context.Context) (bool, error) {
		st, err := p.state(ctx, loadingPanelSel)

		return !st.Visible, err
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn(ctx, "loading panel still visible, continuing", zap.Error(err))
	}

	return nil
}
