package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"
	"time"

	"github.com/paulstansifer/number-loom/internal/api"
	"github.com/paulstansifer/number-loom/internal/browser/chrome"
	"github.com/paulstansifer/number-loom/internal/config"
	"github.com/paulstansifer/number-loom/internal/method"
	"github.com/paulstansifer/number-loom/internal/report"
	"github.com/paulstansifer/number-loom/internal/runner"
	log "github.com/sirupsen/logrus"
)

type LogFormatter struct {
}

func (m *LogFormatter) Format(entry *log.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	timestamp := entry.Time.Format("2006-01-02 15:04:05")
	var newLog string
	newLog = fmt.Sprintf("[%s] [%s] [%s:%d] %s\n", timestamp, entry.Level, path.Base(entry.Caller.File), entry.Caller.Line, entry.Message)

	b.WriteString(newLog)
	return b.Bytes(), nil
}

func init() {
	log.SetOutput(os.Stdout)
	log.SetLevel(log.DebugLevel)
	log.SetReportCaller(true)
	log.SetFormatter(&LogFormatter{})
}

func main() {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Load configuration error: %v", err)
		return
	}
	if !cfg.Debug {
		log.SetLevel(log.InfoLevel)
	}

	log.Info("Starting number-loom UI verification...")

	runErr := run(cfg)
	if runErr != nil {
		log.Errorf("Verification run failed: %v", runErr)
	} else {
		log.Info("Verification run completed successfully.")
	}

	if cfg.Report.Enabled {
		serveReport(cfg)
	}

	if runErr != nil {
		os.Exit(1)
	}
}

// run performs the whole walkthrough with scoped browser ownership: the
// browser is closed on every exit path, including mid-sequence failures.
func run(cfg *config.AppConfig) error {
	// Scenario files are loaded and validated before the browser launches.
	runnerManager, err := runner.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("could not load scenarios: %w", err)
	}
	names, err := runnerManager.Names()
	if err != nil {
		return err
	}

	browserManager, err := chrome.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("could not create browser manager: %w", err)
	}
	defer func() {
		log.Debugf("Closing browser manager...")
		if errClose := browserManager.Close(); errClose != nil {
			log.Debugf("Error closing browser manager: %v", errClose)
		}
		log.Debugf("Browser manager closed.")
	}()

	if err = browserManager.LaunchBrowserAndContext(); err != nil {
		return fmt.Errorf("could not launch browser and context: %w", err)
	}

	rep := report.New(cfg.TargetURL)
	failed := false

	// One fresh tab per scenario, the way the walkthroughs run standalone.
	// A failed scenario does not stop the ones after it.
	for _, name := range names {
		log.Debugf("Opening page for scenario %s at %s", name, cfg.TargetURL)

		page, errNewPage := browserManager.NewPage(cfg.TargetURL)
		if errNewPage != nil {
			log.Errorf("could not open page for scenario %s: %v", name, errNewPage)
			rep.AddScenario(&runner.Result{Name: name, Err: errNewPage})
			failed = true
			continue
		}

		m := method.NewMethod(page)
		if currentURL, errURL := m.GetURL(); errURL == nil {
			log.Debugf("Page for scenario %s ready at %s", name, currentURL)
		}

		result := runnerManager.Run(m, name)
		page.Close()

		rep.AddScenario(result)
		if result.Err != nil {
			failed = true
		}
	}

	rep.Finish(!failed)
	if err = rep.Write(filepath.Join(cfg.OutputDir, "report.json")); err != nil {
		return err
	}

	if failed {
		return fmt.Errorf("one or more scenarios failed")
	}
	return nil
}

// serveReport blocks serving the artifacts until a shutdown signal arrives.
func serveReport(cfg *config.AppConfig) {
	apiConfig := &api.ServerConfig{
		Port:      cfg.Report.Port,
		Debug:     cfg.Debug,
		OutputDir: cfg.OutputDir,
	}
	apiServer := api.NewServer(apiConfig, cfg)

	go func() {
		log.Infof("Starting artifact server on port %s", apiConfig.Port)
		if err := apiServer.Start(); err != nil {
			log.Fatalf("Artifact server failed to start: %v", err)
			return
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Debugf("Received shutdown signal. Cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Stop(ctx); err != nil {
		log.Debugf("Error stopping artifact server: %v", err)
	}

	log.Debugf("Cleanup completed. Exiting...")
}
