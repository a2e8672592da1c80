package browser

import "github.com/chromedp/chromedp/kb"

// Key sequences accepted by Driver.SendKeys.
const (
	KeyEnter = kb.Enter
	KeyTab   = kb.Tab
)
