package panel

import (
	"context"
	"regexp"

	"mailprov/pkg/domain"
	"mailprov/pkg/logger"
	"mailprov/pkg/serrors"

	"go.uber.org/zap"
)

var (
	sessionPathPattern = regexp.MustCompile(`/cpsess\d+/`)
	sessionTokenRegexp = regexp.MustCompile(`^(https?://[^/]+/cpsess\d+/)`)
)

// ParseSessionToken extracts "scheme://host[:port]/cpsessNNNN/" from a URL
// reached after login.
func ParseSessionToken(location string) (domain.SessionToken, error) {
	m := sessionTokenRegexp.FindStringSubmatch(location)
	if m == nil {
		return "", serrors.With(serrors.ErrUnauthorized, "no session token in %q", location)
	}

	return domain.SessionToken(m[1]), nil
}

// Login fills the login form and waits for the redirect to a session URL.
func (p *panel) Login(ctx context.Context) (domain.SessionToken, error) {
	logger.Info(ctx, "opening login page", zap.String("url", p.options.URL))

	if err := within(ctx, p.options.WaitTimeout, "open login page", func(ctx context.Context) error {
		return p.driver.Navigate(ctx, p.options.URL)
	}); err != nil {
		return "", err
	}

	if err := within(ctx, p.options.WaitTimeout, "wait for login form", func(ctx context.Context) error {
		return p.driver.WaitPresent(ctx, userFieldSel)
	}); err != nil {
		p.snapshot(ctx, "login_form_missing.png")

		return "", err
	}

	if err := within(ctx, p.options.WaitTimeout, "submit credentials", func(ctx context.Context) error {
		if err := p.driver.SendKeys(ctx, userFieldSel, p.options.Username); err != nil {
			return err
		}
		if err := p.driver.SendKeys(ctx, passFieldSel, p.options.Password); err != nil {
			return err
		}

		return p.driver.Click(ctx, loginButtonSel)
	}); err != nil {
		return "", err
	}

	var location string
	err := p.until(ctx, p.options.WaitTimeout, func(ctx context.Context) (bool, error) {
		loc, err := p.driver.Location(ctx)
		if err != nil {
			return false, err
		}
		location = loc

		return sessionPathPattern.MatchString(loc), nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Error(ctx, "login did not redirect to a session URL", zap.String("location", location))
		p.snapshot(ctx, "login_timeout.png")

		return "", serrors.Wrap(serrors.ErrUnauthorized, err, "login did not reach a session URL")
	}

	token, err := ParseSessionToken(location)
	if err != nil {
		p.snapshot(ctx, "no_token_after_login.png")

		return "", err
	}
	logger.Info(ctx, "logged in", zap.String("base", string(token)))

	return token, nil
}
