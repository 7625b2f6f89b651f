package chrome

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

// Page is a single browser tab. It owns the tab's chromedp context for the
// lifetime of the verification run.
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc
	URL    string
}

// NewPage creates a new tab in the running browser and navigates it to url,
// waiting for the load event with chromedp's default semantics.
func NewPage(browserCtx context.Context, url string) (*Page, error) {
	if browserCtx == nil {
		return nil, fmt.Errorf("browser context not initialized. Call LaunchBrowserAndContext first")
	}

	var newTargetID target.ID
	err := chromedp.Run(
		browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			newTargetID, err = target.CreateTarget("about:blank").Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create new target (tab): %w", err)
	}

	newPageCtx, newPageCancel := chromedp.NewContext(browserCtx, chromedp.WithTargetID(newTargetID))

	err = chromedp.Run(newPageCtx, chromedp.Navigate(url))
	if err != nil {
		newPageCancel()
		return nil, fmt.Errorf("failed to navigate new page to %s: %w", url, err)
	}

	log.Debugf("New page (targetID: %s) created at %s.", newTargetID, url)

	return &Page{
		ctx:    newPageCtx,
		cancel: newPageCancel,
		URL:    url,
	}, nil
}

func (p *Page) GetContext() context.Context {
	return p.ctx
}

func (p *Page) Close() {
	p.cancel()
}
