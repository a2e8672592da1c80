package panel

import (
	"encoding/json"
	"fmt"
)

// findJS resolves a selector in the top document, then in same-origin frames.
const findJS = `function __find(sel) {
  var el = document.querySelector(sel);
  if (el) return el;
  var frames = document.querySelectorAll('iframe,frame');
  for (var i = 0; i < frames.length; i++) {
    try {
      var d = frames[i].contentDocument;
      if (d) { el = d.querySelector(sel); if (el) return el; }
    } catch (e) {}
  }
  return null;
}
function __visible(el) {
  if (!el) return false;
  if (el.offsetParent !== null) return true;
  var st = window.getComputedStyle(el);
  return st.position === 'fixed' && st.display !== 'none' && st.visibility !== 'hidden';
}`

// script wraps body in an IIFE with the lookup helpers in scope. Every %s in
// body is replaced by the JSON encoding of the matching argument.
func script(body string, args ...any) string {
	encoded := make([]any, len(args))
	for i, arg := range args {
		b, err := json.Marshal(arg)
		if err != nil {
			b = []byte(`""`)
		}
		encoded[i] = string(b)
	}

	return fmt.Sprintf("(function() {\n%s\n%s\n})()", findJS, fmt.Sprintf(body, encoded...))
}

// elementState is the decoded result of stateScript.
type elementState struct {
	Exists      bool   `json:"exists"`
	Visible     bool   `json:"visible"`
	Enabled     bool   `json:"enabled"`
	Checked     bool   `json:"checked"`
	PointerNone bool   `json:"pointerNone"`
	Value       string `json:"value"`
	Text        string `json:"text"`
}

// clickable reports the create button conditions: rendered, enabled and
// accepting pointer events.
func (s elementState) clickable() bool {
	return s.Exists && s.Visible && s.Enabled && !s.PointerNone
}

func stateScript(sel string) string {
	return script(`var el = __find(%s);
if (!el) return {exists: false, visible: false, enabled: false, checked: false, pointerNone: false, value: "", text: ""};
var st = window.getComputedStyle(el);
return {
  exists: true,
  visible: __visible(el),
  enabled: !el.disabled,
  checked: !!el.checked,
  pointerNone: st.pointerEvents === 'none',
  value: (el.value === undefined || el.value === null) ? "" : String(el.value),
  text: (el.innerText || el.textContent || "").trim()
};`, sel)
}

// setValueScript assigns the value and fires the events the application
// listens to, so its model and validators see the change.
func setValueScript(sel, value string) string {
	return script(`var el = __find(%s);
if (!el) return false;
el.scrollIntoView({block: 'center'});
el.focus();
el.value = %s;
el.dispatchEvent(new Event('input', {bubbles: true}));
el.dispatchEvent(new Event('change', {bubbles: true}));
return true;`, sel, value)
}

func clickScript(sel string) string {
	return script(`var el = __find(%s);
if (!el) return false;
el.scrollIntoView({block: 'center'});
el.click();
return true;`, sel)
}

func scrollIntoViewScript(sel string) string {
	return script(`var el = __find(%s);
if (!el) return false;
el.scrollIntoView({block: 'center'});
return true;`, sel)
}

const mailDomainCountScript = `(function() {
  try { return (window.PAGE && window.PAGE.mailDomains && window.PAGE.mailDomains.length) || 0; }
  catch (e) { return 0; }
})()`

// selectDomainScript picks the domain in the dropdown. A native select gets
// its value changed; the themed dropdown is opened and the matching entry
// clicked.
func selectDomainScript(sel, domainName string) string {
	return script(`var box = __find(%s), want = %s;
if (!box) return false;
var norm = function(s) { return (s || "").replace(/\s+/g, ' ').trim(); };
if (box.tagName === 'SELECT') {
  for (var i = 0; i < box.options.length; i++) {
    var o = box.options[i];
    if (norm(o.text) === want || o.value === want) {
      box.value = o.value;
      box.dispatchEvent(new Event('change', {bubbles: true}));
      return true;
    }
  }
  return false;
}
box.click();
var items = (box.ownerDocument || document).querySelectorAll('li, div, span, a');
for (var j = 0; j < items.length; j++) {
  if (norm(items[j].textContent) === want && __visible(items[j])) { items[j].click(); return true; }
}
return false;`, sel, domainName)
}

const angularPresentScript = `!!window.angular`

const angularIdleScript = `(function() {
  try {
    var root = document.querySelector('#viewContent') || document.body;
    var injector = window.angular.element(root).injector();
    if (!injector) return true;
    return injector.get('$http').pendingRequests.length === 0;
  } catch (e) { return true; }
})()`

const locationHashScript = `window.location.hash || ""`

func textScript(sel string) string {
	return script(`var el = __find(%s);
return el ? (el.innerText || el.textContent || "") : "";`, sel)
}

// markPasswordScript finds the visible password input of the create form and
// tags it so the following steps can address it with passwordSel.
func markPasswordScript() string {
	return script(`var pick = function(list) {
  for (var i = 0; i < list.length; i++) { if (__visible(list[i])) return list[i]; }
  return null;
};
var docs = [document];
var frames = document.querySelectorAll('iframe,frame');
for (var i = 0; i < frames.length; i++) {
  try { if (frames[i].contentDocument) docs.push(frames[i].contentDocument); } catch (e) {}
}
for (var k = 0; k < docs.length; k++) {
  var el = pick(docs[k].querySelectorAll("password input[type='password']")) ||
    pick(docs[k].querySelectorAll("input[type='password']"));
  if (el) { el.setAttribute('data-mailprov-field', 'password'); return true; }
}
return false;`)
}

// buttonDiagnostics is the decoded result of diagnosticsScript.
type buttonDiagnostics struct {
	Exists         bool   `json:"exists"`
	Visible        bool   `json:"visible"`
	Disabled       bool   `json:"disabled"`
	PointerNone    bool   `json:"pointerNone"`
	OuterHTML      string `json:"outerHTML"`
	OverlayDisplay string `json:"overlayDisplay"`
	OverlayOpacity string `json:"overlayOpacity"`
	Hash           string `json:"hash"`
	Alerts         string `json:"alerts"`
}

func diagnosticsScript() string {
	return script(`var btn = __find(%s), overlay = __find(%s), alerts = __find(%s);
var ost = overlay ? window.getComputedStyle(overlay) : null;
return {
  exists: !!btn,
  visible: __visible(btn),
  disabled: btn ? !!btn.disabled : false,
  pointerNone: btn ? window.getComputedStyle(btn).pointerEvents === 'none' : false,
  outerHTML: btn ? btn.outerHTML.substring(0, 2000) : "",
  overlayDisplay: ost ? ost.display : "",
  overlayOpacity: ost ? ost.opacity : "",
  hash: window.location.hash || "",
  alerts: alerts ? (alerts.innerText || "").substring(0, 2000) : ""
};`, createButtonSel, overlaySel, alertListSel)
}

// pageHTMLScript returns the markup of the top document followed by every
// same-origin frame.
const pageHTMLScript = `(function() {
  var out = [document.documentElement.outerHTML];
  var frames = document.querySelectorAll('iframe,frame');
  for (var i = 0; i < frames.length; i++) {
    try {
      var d = frames[i].contentDocument;
      if (d && d.documentElement) out.push(d.documentElement.outerHTML);
    } catch (e) {}
  }
  return out;
})()`
