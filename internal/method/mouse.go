package method

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

var lastClickTime time.Time

const clickInterval = 200 * time.Millisecond

func waitClickInterval() {
	if time.Since(lastClickTime) < clickInterval {
		log.Debugf("Click too fast, wait for 200ms")
		time.Sleep(clickInterval)
	}
	lastClickTime = time.Now()
}

// Click waits for the element matching the CSS selector to be visible, then
// clicks it. A timeout of 0 uses the page context's own deadline.
func (m *Method) Click(elementSelector string, timeout float64) error {
	waitClickInterval()
	log.Debugf("Attempting to find and click element with selector: %s", elementSelector)

	opCtx := m.page.GetContext()
	var cancel context.CancelFunc
	if timeout > 0 {
		opCtx, cancel = context.WithTimeout(m.page.GetContext(), time.Duration(timeout*float64(time.Millisecond)))
		defer cancel()
	}

	err := chromedp.Run(opCtx,
		chromedp.WaitVisible(elementSelector, chromedp.ByQuery),
		chromedp.Click(elementSelector, chromedp.ByQuery),
	)

	if err != nil {
		var currentURL string
		// Best effort to get URL for error context
		_ = chromedp.Run(m.page.GetContext(), chromedp.Location(&currentURL))
		return fmt.Errorf("error clicking element '%s' on page %s: %v", elementSelector, currentURL, err)
	}

	log.Debugf("Successfully clicked element '%s'.", elementSelector)
	return nil
}

// ClickButton clicks a button by its visible label.
func (m *Method) ClickButton(label string) error {
	return m.clickXPath(buttonXPath(label), label)
}

// ClickText clicks the first element whose text content equals the label.
func (m *Method) ClickText(text string) error {
	return m.clickXPath(textXPath(text), text)
}

func (m *Method) clickXPath(xpath, label string) error {
	waitClickInterval()
	log.Debugf("Attempting to click element labeled '%s'", label)

	err := chromedp.Run(m.page.GetContext(),
		chromedp.WaitVisible(xpath, chromedp.BySearch),
		chromedp.Click(xpath, chromedp.BySearch),
	)
	if err != nil {
		var currentURL string
		_ = chromedp.Run(m.page.GetContext(), chromedp.Location(&currentURL))
		return fmt.Errorf("error clicking element labeled '%s' on page %s: %v", label, currentURL, err)
	}

	log.Debugf("Successfully clicked element labeled '%s'.", label)
	return nil
}

// ClickElementXY clicks at an offset inside the element matching the CSS
// selector. The offset is relative to the element's top-left corner, matching
// how a user aims at a cell inside the puzzle canvas.
func (m *Method) ClickElementXY(elementSelector string, x, y float64) error {
	waitClickInterval()

	var rect struct {
		Left float64 `json:"left"`
		Top  float64 `json:"top"`
	}
	script := fmt.Sprintf(
		`(() => { const r = document.querySelector(%q).getBoundingClientRect(); return {left: r.left, top: r.top}; })()`,
		elementSelector,
	)

	err := chromedp.Run(m.page.GetContext(),
		chromedp.WaitVisible(elementSelector, chromedp.ByQuery),
		chromedp.Evaluate(script, &rect),
	)
	if err != nil {
		return fmt.Errorf("error locating element '%s': %v", elementSelector, err)
	}

	log.Debugf("Clicking '%s' at offset (%.0f, %.0f)", elementSelector, x, y)
	return chromedp.Run(m.page.GetContext(), chromedp.MouseClickXY(rect.Left+x, rect.Top+y))
}

// MouseClick clicks at viewport-absolute coordinates.
func (m *Method) MouseClick(x, y float64) error {
	waitClickInterval()

	return chromedp.Run(m.page.GetContext(), chromedp.MouseClickXY(x, y))
}
