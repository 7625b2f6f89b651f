package method

import (
	"fmt"

	"github.com/chromedp/chromedp"
)

func (m *Method) GetURL() (string, error) {
	var currentURL string
	err := chromedp.Run(m.page.GetContext(), chromedp.Location(&currentURL))
	if err != nil {
		return "", err
	}
	return currentURL, nil
}

// Navigate drives the page to url and waits for the load event.
func (m *Method) Navigate(url string) error {
	err := chromedp.Run(m.page.GetContext(), chromedp.Navigate(url))
	if err != nil {
		return fmt.Errorf("could not navigate to %s: %w", url, err)
	}
	return nil
}
