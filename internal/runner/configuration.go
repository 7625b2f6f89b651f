package runner

import (
	"fmt"
	"strconv"
)

// Scenario is one verification walkthrough: a linear list of steps executed
// against a single page.
type Scenario struct {
	Version     string         `yaml:"version"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

type ScenarioStep struct {
	Action      string   `yaml:"action"`
	Description string   `yaml:"description"`
	Params      []string `yaml:"params"`
}

// stepArity maps each known action to its required parameter count.
// navigate may carry zero params, in which case the configured target URL
// is used.
var stepArity = map[string][]int{
	"navigate":     {0, 1},
	"click":        {1},
	"click_button": {1},
	"click_text":   {1},
	"click_canvas": {3},
	"click_xy":     {2},
	"screenshot":   {1},
}

// Validate checks every step against the known actions and arities. It runs
// before the browser launches so configuration mistakes never cost a launch.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %s has no steps", s.Name)
	}

	for i, step := range s.Steps {
		arities, ok := stepArity[step.Action]
		if !ok {
			return fmt.Errorf("scenario %s step %d: unknown action %q", s.Name, i, step.Action)
		}

		arityOK := false
		for _, n := range arities {
			if len(step.Params) == n {
				arityOK = true
				break
			}
		}
		if !arityOK {
			return fmt.Errorf("scenario %s step %d: action %q got %d params, want %v", s.Name, i, step.Action, len(step.Params), arities)
		}

		var coords []string
		switch step.Action {
		case "click_canvas":
			coords = step.Params[1:]
		case "click_xy":
			coords = step.Params
		}
		for _, p := range coords {
			if _, err := strconv.ParseFloat(p, 64); err != nil {
				return fmt.Errorf("scenario %s step %d: %s coordinate %q is not a number", s.Name, i, step.Action, p)
			}
		}
	}
	return nil
}
