package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/paulstansifer/number-loom/internal/config"
	"github.com/paulstansifer/number-loom/internal/method"
	log "github.com/sirupsen/logrus"
)

// StepResult records one executed step.
type StepResult struct {
	Action string
	Params []string
	Error  string
}

// Result records one executed scenario. Artifacts lists the screenshot
// paths written during the run.
type Result struct {
	Name      string
	Steps     []StepResult
	Artifacts []string
	Err       error
}

// Manager loads scenario files and executes them as a strictly linear
// sequence of page operations. A failing step aborts the remaining steps of
// its scenario. Loading and validation happen at construction so bad
// scenario files are caught before any browser launches.
type Manager struct {
	appConfig *config.AppConfig
	scenarios map[string]Scenario
}

func NewManager(appConfig *config.AppConfig) (*Manager, error) {
	rm := &Manager{
		appConfig: appConfig,
		scenarios: make(map[string]Scenario),
	}
	err := rm.LoadScenarios()
	if err != nil {
		return nil, err
	}
	return rm, nil
}

// LoadScenario loads and validates a single scenario file.
func (rm *Manager) LoadScenario(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var scenario Scenario
	err = yaml.Unmarshal(data, &scenario)
	if err != nil {
		return err
	}
	if scenario.Name == "" {
		scenario.Name = name
	}
	if err = scenario.Validate(); err != nil {
		return err
	}

	rm.scenarios[name] = scenario
	return nil
}

// LoadScenarios scans all yaml files in the scenario directory and calls
// LoadScenario by filename.
func (rm *Manager) LoadScenarios() error {
	yamlFiles, err := filepath.Glob(filepath.Join(rm.appConfig.ScenarioDir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to scan yaml files: %v", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(rm.appConfig.ScenarioDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to scan yml files: %v", err)
	}

	allFiles := append(yamlFiles, ymlFiles...)
	if len(allFiles) == 0 {
		return fmt.Errorf("no scenario files found in %s", rm.appConfig.ScenarioDir)
	}

	for _, filePath := range allFiles {
		fileName := filepath.Base(filePath)
		name := strings.TrimSuffix(fileName, filepath.Ext(fileName))

		log.Debugf("Loading scenario file: %s -> %s", name, filePath)

		err = rm.LoadScenario(name, filePath)
		if err != nil {
			return fmt.Errorf("failed to load scenario file %s: %v", filePath, err)
		}

		log.Debugf("Successfully loaded scenario: %s", name)
	}

	log.Debugf("Total loaded %d scenario files", len(allFiles))
	return nil
}

// Names returns the scenarios to run, in the order configured under
// `scenarios`, or every loaded scenario in lexical order when the list is
// empty.
func (rm *Manager) Names() ([]string, error) {
	if len(rm.appConfig.Scenarios) > 0 {
		for _, name := range rm.appConfig.Scenarios {
			if _, ok := rm.scenarios[name]; !ok {
				return nil, fmt.Errorf("configured scenario %q not found in %s", name, rm.appConfig.ScenarioDir)
			}
		}
		return rm.appConfig.Scenarios, nil
	}

	names := make([]string, 0, len(rm.scenarios))
	for name := range rm.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Run executes the named scenario step by step against the given page
// methods. The returned Result carries the step log and produced artifacts
// even when a step failed.
func (rm *Manager) Run(m *method.Method, name string) *Result {
	result := &Result{Name: name}

	scenario, ok := rm.scenarios[name]
	if !ok {
		result.Err = fmt.Errorf("scenario %q not loaded", name)
		return result
	}

	log.Infof("Running scenario %s (%d steps)", name, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Debugf("scenario %s step %d: %s %v", name, i, step.Action, step.Params)

		err := rm.executeStep(m, step, result)
		stepResult := StepResult{Action: step.Action, Params: step.Params}
		if err != nil {
			stepResult.Error = err.Error()
			result.Steps = append(result.Steps, stepResult)
			result.Err = fmt.Errorf("scenario %s step %d (%s): %w", name, i, step.Action, err)
			log.Errorf("scenario %s aborted: %v", name, result.Err)
			return result
		}
		result.Steps = append(result.Steps, stepResult)
	}

	log.Infof("Scenario %s completed successfully.", name)
	return result
}

func (rm *Manager) executeStep(m *method.Method, step ScenarioStep, result *Result) error {
	switch step.Action {
	case "navigate":
		url := rm.appConfig.TargetURL
		if len(step.Params) == 1 {
			url = step.Params[0]
		}
		return m.Navigate(url)
	case "click":
		return m.Click(step.Params[0], 0)
	case "click_button":
		return m.ClickButton(step.Params[0])
	case "click_text":
		return m.ClickText(step.Params[0])
	case "click_canvas":
		// Validate guaranteed the coordinates parse.
		x, _ := strconv.ParseFloat(step.Params[1], 64)
		y, _ := strconv.ParseFloat(step.Params[2], 64)
		return m.ClickElementXY(step.Params[0], x, y)
	case "click_xy":
		x, _ := strconv.ParseFloat(step.Params[0], 64)
		y, _ := strconv.ParseFloat(step.Params[1], 64)
		return m.MouseClick(x, y)
	case "screenshot":
		path := filepath.Join(rm.appConfig.OutputDir, step.Params[0])
		if err := m.Screenshot(path); err != nil {
			return err
		}
		result.Artifacts = append(result.Artifacts, path)
		return nil
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
}
