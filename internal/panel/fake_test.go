package panel_test

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"mailprov/internal/panel"
	"mailprov/pkg/artifacts"
	mockbrowser "mailprov/pkg/browser/mock"

	"go.uber.org/mock/gomock"
)

// fakeElement is what the page scripts report for one selector.
type fakeElement struct {
	Exists      bool
	Visible     bool
	Enabled     bool
	Checked     bool
	PointerNone bool
	Value       string
	Text        string

	// HideAfter makes a visible element hidden once it has been read this many times.
	HideAfter int
	// Flicker, when set, overrides Visible for the n-th read (1-based).
	Flicker func(read int) bool

	reads int
}

// fakePage answers the scripts evaluated by the panel package.
type fakePage struct {
	mu sync.Mutex

	elements      map[string]*fakeElement
	domains       int
	angular       bool
	hash          string
	html          []string
	passwordFound bool

	values           map[string]string
	scriptClicks     []string
	selectedDomain   string
	domainSelections int
	diagnostics      int
}

func newFakePage() *fakePage {
	return &fakePage{
		elements: map[string]*fakeElement{},
		values:   map[string]string{},
		angular:  true,
		domains:  1,
	}
}

func (f *fakePage) set(sel string, el fakeElement) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.elements[sel] = &el
}

var (
	findArg  = regexp.MustCompile(`__find\(("(?:[^"\\]|\\.)*")\)`)
	valueArg = regexp.MustCompile(`el\.value = ("(?:[^"\\]|\\.)*");`)
	wantArg  = regexp.MustCompile(`want = ("(?:[^"\\]|\\.)*");`)
)

func jsonArg(re *regexp.Regexp, expr string) string {
	m := re.FindStringSubmatch(expr)
	if m == nil {
		return ""
	}
	var s string
	_ = json.Unmarshal([]byte(m[1]), &s)

	return s
}

func (f *fakePage) state(sel string) map[string]any {
	el, ok := f.elements[sel]
	if !ok || !el.Exists {
		return map[string]any{"exists": false}
	}
	el.reads++
	visible := el.Visible
	if el.HideAfter > 0 && el.reads > el.HideAfter {
		visible = false
	}
	if el.Flicker != nil {
		visible = el.Flicker(el.reads)
	}
	value := el.Value
	if v, ok := f.values[sel]; ok && el.Value == "" {
		value = v
	}

	return map[string]any{
		"exists":      true,
		"visible":     visible,
		"enabled":     el.Enabled,
		"checked":     el.Checked,
		"pointerNone": el.PointerNone,
		"value":       value,
		"text":        el.Text,
	}
}

func (f *fakePage) eval(expr string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.Contains(expr, "overlayDisplay"):
		f.diagnostics++

		return map[string]any{"exists": true, "disabled": true, "outerHTML": "<button disabled>"}, nil
	case strings.Contains(expr, "pointerNone: st.pointerEvents"):
		return f.state(jsonArg(findArg, expr)), nil
	case strings.Contains(expr, "el.value = "):
		sel := jsonArg(findArg, expr)
		if el, ok := f.elements[sel]; sel != "[data-mailprov-field='password']" && (!ok || !el.Exists) {
			return false, nil
		}
		f.values[sel] = jsonArg(valueArg, expr)

		return true, nil
	case strings.Contains(expr, "box.tagName"):
		f.domainSelections++
		f.selectedDomain = jsonArg(wantArg, expr)

		return true, nil
	case strings.Contains(expr, "el.click();"):
		sel := jsonArg(findArg, expr)
		el, ok := f.elements[sel]
		if !ok || !el.Exists {
			return false, nil
		}
		f.scriptClicks = append(f.scriptClicks, sel)
		el.Checked = !el.Checked

		return true, nil
	case strings.Contains(expr, "el.scrollIntoView({block: 'center'});\nreturn true;"):
		return true, nil
	case strings.Contains(expr, "PAGE.mailDomains"):
		return f.domains, nil
	case expr == "!!window.angular":
		return f.angular, nil
	case strings.Contains(expr, "pendingRequests"):
		return true, nil
	case strings.Contains(expr, "window.location.hash"):
		return f.hash, nil
	case strings.Contains(expr, "data-mailprov-field"):
		return f.passwordFound, nil
	case strings.Contains(expr, "document.documentElement.outerHTML"):
		return f.html, nil
	case strings.Contains(expr, `(el.innerText || el.textContent || "") : ""`):
		el, ok := f.elements[jsonArg(findArg, expr)]
		if !ok {
			return "", nil
		}

		return el.Text, nil
	}

	return nil, fmt.Errorf("unexpected script: %.80s", expr)
}

// evaluate has the signature of browser.Driver.Evaluate.
func (f *fakePage) evaluate(_ context.Context, expr string, res any) error {
	v, err := f.eval(expr)
	if err != nil || res == nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, res)
}

func (f *fakePage) value(sel string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values[sel]
}

func testOptions() panel.Options {
	return panel.Options{
		URL:      "https://panel.test:2083",
		Username: "owner",
		Password: "secret",
		Theme:    "jupiter",
		Form: panel.FormOptions{
			UnlimitedQuota:   true,
			SendWelcomeEmail: false,
			StayOnPage:       true,
		},
		WaitTimeout:         200 * time.Millisecond,
		AngularReadyTimeout: 200 * time.Millisecond,
		ButtonReadyTimeout:  200 * time.Millisecond,
		ButtonDwell:         20 * time.Millisecond,
		PollInterval:        5 * time.Millisecond,
		CreateCycleTimeout:  200 * time.Millisecond,
		AfterSubmitTimeout:  50 * time.Millisecond,
		VerifyTimeout:       50 * time.Millisecond,
		SubmitPause:         time.Millisecond,
	}
}

type testPanel struct {
	drv   *mockbrowser.MockDriver
	page  *fakePage
	panel panel.Panel
	store *artifacts.Store
}

func newTestPanel(t *testing.T, options panel.Options) *testPanel {
	t.Helper()

	ctrl := gomock.NewController(t)
	drv := mockbrowser.NewMockDriver(ctrl)
	page := newFakePage()
	store, err := artifacts.New(t.TempDir())
	if err != nil {
		t.Fatalf("could not create store: %v", err)
	}

	drv.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(page.evaluate).AnyTimes()
	drv.EXPECT().Screenshot(gomock.Any()).Return([]byte("\x89PNG"), nil).AnyTimes()

	return &testPanel{
		drv:   drv,
		page:  page,
		panel: panel.New(drv, store, options),
		store: store,
	}
}

// click has the signature of browser.Driver.Click and toggles checkable elements.
func (f *fakePage) click(_ context.Context, sel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	el, ok := f.elements[sel]
	if !ok || !el.Exists {
		return fmt.Errorf("no node for %s", sel)
	}
	el.Checked = !el.Checked

	return nil
}
