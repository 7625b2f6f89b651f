package chrome

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/paulstansifer/number-loom/internal/config"
	log "github.com/sirupsen/logrus"
)

// Manager manages a Chromium browser instance and its contexts.
type Manager struct {
	appConfig     *config.AppConfig
	allocator     context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	execPath      string
}

// NewManager creates a new chromedp Manager instance.
// It initializes the allocator context but does not launch the browser yet.
func NewManager(appConfig *config.AppConfig) (*Manager, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("appConfig cannot be nil")
	}

	execPath := appConfig.Browser.ChromiumPath
	if execPath == "" {
		execPath = os.Getenv("CHROME_BIN")
		if execPath == "" {
			log.Warn("Chromium path not specified in config or CHROME_BIN env, will attempt auto-detection.")
		}
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
	}

	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	if appConfig.Headless {
		opts = append(opts, chromedp.Flag("headless", true))
		opts = append(opts, chromedp.Flag("disable-gpu", true))
		opts = append(opts, chromedp.WindowSize(1280, 800))
	}

	if appConfig.Browser.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(appConfig.Browser.UserDataDir))
	}

	for _, arg := range appConfig.Browser.Args {
		if arg != "" {
			parts := strings.SplitN(arg, "=", 2)
			if len(parts) == 2 {
				opts = append(opts, chromedp.Flag(strings.TrimPrefix(parts[0], "--"), parts[1]))
			} else {
				opts = append(opts, chromedp.Flag(strings.TrimPrefix(parts[0], "--"), true))
			}
		}
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Manager{
		appConfig:   appConfig,
		allocator:   allocCtx,
		allocCancel: allocCancel,
		execPath:    execPath,
	}, nil
}

// LaunchBrowserAndContext launches the browser and creates a new browser context.
func (m *Manager) LaunchBrowserAndContext() error {
	if m.allocator == nil {
		return fmt.Errorf("manager not properly initialized, allocator is nil")
	}

	browserCtx, browserCancel := chromedp.NewContext(
		m.allocator,
		chromedp.WithLogf(log.Infof),
	)
	m.browserCtx = browserCtx
	m.browserCancel = browserCancel

	if err := chromedp.Run(m.browserCtx); err != nil {
		_ = m.Close()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	log.Infof("Chromium browser launched successfully with path: %s", m.execPath)
	return nil
}

// NewPage opens a new tab and navigates it to the given URL.
func (m *Manager) NewPage(url string) (*Page, error) {
	if m.browserCtx == nil {
		return nil, fmt.Errorf("browser context not initialized. Call LaunchBrowserAndContext first")
	}

	return NewPage(m.browserCtx, url)
}

// Close cancels the browser and allocator contexts, shutting down the
// browser process. Safe to call more than once.
func (m *Manager) Close() error {
	if m.browserCancel != nil {
		log.Debug("Cancelling browser context...")
		m.browserCancel()
		m.browserCancel = nil
		m.browserCtx = nil
		log.Info("Browser context cancelled.")
	}

	if m.allocCancel != nil {
		log.Debug("Cancelling allocator context...")
		m.allocCancel()
		m.allocCancel = nil
		m.allocator = nil
		log.Info("Allocator context cancelled and browser process shut down.")
	}

	log.Info("Chrome manager closed.")
	return nil
}
