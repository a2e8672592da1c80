// Package panel drives the e-mail accounts pages of the control panel
// through a browser.Driver: login, navigation, the create form, submission
// and verification of the accounts table.
package panel

import (
	"context"

	"mailprov/pkg/domain"
)

// Panel is the page-level API used by the batch driver. Methods returning a
// bool report a best-effort observation and never fail the batch.
//
//go:generate mockgen -package mockpanel -source=interface.go -destination=mock/mockpanel.go *
type Panel interface {
	// Login submits the credentials and returns the session token.
	Login(ctx context.Context) (domain.SessionToken, error)
	// OpenAccountsList navigates to the accounts list and waits for it to render.
	OpenAccountsList(ctx context.Context, token domain.SessionToken) error
	// OpenCreateForm navigates to the create form and waits for the username field.
	OpenCreateForm(ctx context.Context, token domain.SessionToken) error
	// Reload reloads the current page.
	Reload(ctx context.Context) error
	// FillCreateForm populates the form and returns the domain the account will use.
	FillCreateForm(ctx context.Context, req domain.AccountRequest) (string, error)
	// Submit sends the form.
	Submit(ctx context.Context) error
	// WaitCreateCycle reports whether the panel confirmed the submission.
	WaitCreateCycle(ctx context.Context) bool
	// WaitAfterSubmit reports whether the accounts list is reachable after a confirmed submission.
	WaitAfterSubmit(ctx context.Context) bool
	// AccountExists reports whether address is listed in the accounts table.
	AccountExists(ctx context.Context, address string) bool
	// DuplicateIndicated reports whether the page says the account already exists.
	DuplicateIndicated(ctx context.Context) bool
	// Accounts returns the addresses currently listed in the accounts table.
	Accounts(ctx context.Context) ([]string, error)
}
