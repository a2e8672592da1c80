// Package browser defines the small set of page operations the provisioning
// flow needs from a remote browser. Selectors are CSS selectors evaluated in
// the top document of the current tab.
package browser

import (
	"context"
)

// Driver controls one browser tab. Blocking calls wait until the condition is
// met or ctx is done, so callers bound every call with a deadline.
//
//go:generate mockgen -package mockbrowser -source=interface.go -destination=mock/mockbrowser.go *
type Driver interface {
	// Navigate loads url in the tab and waits for the load to finish.
	Navigate(ctx context.Context, url string) error
	// Reload reloads the current document.
	Reload(ctx context.Context) error
	// Location returns the current document URL.
	Location(ctx context.Context) (string, error)
	// Evaluate runs a JavaScript expression and decodes its result into res.
	// A nil res discards the result.
	Evaluate(ctx context.Context, expression string, res any) error
	// WaitPresent waits until an element matching sel is in the DOM.
	WaitPresent(ctx context.Context, sel string) error
	// WaitVisible waits until an element matching sel is rendered.
	WaitVisible(ctx context.Context, sel string) error
	// WaitNotVisible waits until the element matching sel is hidden or gone.
	WaitNotVisible(ctx context.Context, sel string) error
	// SendKeys types keys into the element matching sel.
	SendKeys(ctx context.Context, sel, keys string) error
	// Click performs a native mouse click on the element matching sel.
	Click(ctx context.Context, sel string) error
	// Screenshot captures the visible viewport as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
	// Close releases the tab and the connection to the browser.
	Close(ctx context.Context) error
}
