package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulstansifer/number-loom/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sidebarScenario = `
version: "1.0"
name: solver_sidebar
steps:
  - action: screenshot
    params: ["edit_mode.png"]
  - action: click_button
    params: ["Puzzle"]
  - action: screenshot
    params: ["solve_mode.png"]
`

const metadataScenario = `
version: "1.0"
name: metadata_ui
steps:
  - action: click_text
    params: ["Puzzle"]
  - action: screenshot
    params: ["verification.png"]
`

func writeScenarios(t *testing.T, files map[string]string) *config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return &config.AppConfig{
		TargetURL:   "http://127.0.0.1:8080",
		OutputDir:   t.TempDir(),
		ScenarioDir: dir,
	}
}

func TestNewManagerLoadsScenarios(t *testing.T) {
	cfg := writeScenarios(t, map[string]string{
		"solver_sidebar.yaml": sidebarScenario,
		"metadata_ui.yml":     metadataScenario,
	})

	rm, err := NewManager(cfg)
	require.NoError(t, err)

	names, err := rm.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"metadata_ui", "solver_sidebar"}, names)
}

func TestNamesHonorsConfiguredOrder(t *testing.T) {
	cfg := writeScenarios(t, map[string]string{
		"solver_sidebar.yaml": sidebarScenario,
		"metadata_ui.yaml":    metadataScenario,
	})
	cfg.Scenarios = []string{"solver_sidebar", "metadata_ui"}

	rm, err := NewManager(cfg)
	require.NoError(t, err)

	names, err := rm.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"solver_sidebar", "metadata_ui"}, names)
}

func TestNamesUnknownConfiguredScenario(t *testing.T) {
	cfg := writeScenarios(t, map[string]string{
		"solver_sidebar.yaml": sidebarScenario,
	})
	cfg.Scenarios = []string{"does_not_exist"}

	rm, err := NewManager(cfg)
	require.NoError(t, err)

	_, err = rm.Names()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does_not_exist")
}

func TestNewManagerEmptyScenarioDir(t *testing.T) {
	cfg := &config.AppConfig{
		TargetURL:   "http://127.0.0.1:8080",
		ScenarioDir: t.TempDir(),
	}

	_, err := NewManager(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenario files")
}

func TestNewManagerInvalidScenario(t *testing.T) {
	cfg := writeScenarios(t, map[string]string{
		"bad.yaml": `
name: bad
steps:
  - action: teleport
    params: ["somewhere"]
`,
	})

	_, err := NewManager(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action")
}

func TestRunUnloadedScenario(t *testing.T) {
	cfg := writeScenarios(t, map[string]string{
		"solver_sidebar.yaml": sidebarScenario,
	})

	rm, err := NewManager(cfg)
	require.NoError(t, err)

	result := rm.Run(nil, "missing")
	require.Error(t, result.Err)
	assert.Empty(t, result.Steps)
	assert.Empty(t, result.Artifacts)
}
