package method

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	log "github.com/sirupsen/logrus"
)

// Screenshot captures the current viewport as a PNG and writes it to path,
// overwriting any prior file. Parent directories are created as needed.
func (m *Method) Screenshot(path string) error {
	var buf []byte
	err := chromedp.Run(m.page.GetContext(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to capture screenshot: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create screenshot directory %s: %w", dir, err)
		}
	}

	if err = os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("failed to write screenshot to %s: %w", path, err)
	}

	log.Infof("Screenshot saved to %s (%d bytes)", path, len(buf))
	return nil
}
