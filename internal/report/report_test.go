package report

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulstansifer/number-loom/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestReportPassedRun(t *testing.T) {
	dir := t.TempDir()
	artifact := filepath.Join(dir, "edit_mode.png")
	require.NoError(t, os.WriteFile(artifact, []byte("not really a png"), 0644))

	rep := New("http://127.0.0.1:8080")
	rep.AddScenario(&runner.Result{
		Name: "solver_sidebar",
		Steps: []runner.StepResult{
			{Action: "screenshot", Params: []string{"edit_mode.png"}},
			{Action: "click_button", Params: []string{"Puzzle"}},
		},
		Artifacts: []string{artifact},
	})
	rep.Finish(true)

	doc := string(rep.JSON())
	assert.NotEmpty(t, gjson.Get(doc, "run_id").String())
	assert.Equal(t, "http://127.0.0.1:8080", gjson.Get(doc, "target_url").String())
	assert.Equal(t, "passed", gjson.Get(doc, "status").String())
	assert.NotEmpty(t, gjson.Get(doc, "started_at").String())
	assert.NotEmpty(t, gjson.Get(doc, "ended_at").String())

	assert.Equal(t, "solver_sidebar", gjson.Get(doc, "scenarios.0.name").String())
	assert.Equal(t, "passed", gjson.Get(doc, "scenarios.0.status").String())
	assert.Equal(t, int64(2), gjson.Get(doc, "scenarios.0.steps.#").Int())
	assert.Equal(t, "screenshot", gjson.Get(doc, "scenarios.0.steps.0.action").String())
	assert.Equal(t, artifact, gjson.Get(doc, "scenarios.0.artifacts.0.path").String())
	assert.Equal(t, int64(16), gjson.Get(doc, "scenarios.0.artifacts.0.bytes").Int())
}

func TestReportFailedScenario(t *testing.T) {
	rep := New("http://127.0.0.1:8080")
	rep.AddScenario(&runner.Result{
		Name: "metadata_ui",
		Steps: []runner.StepResult{
			{Action: "click_text", Params: []string{"Puzzle"}, Error: "element not found"},
		},
		Err: fmt.Errorf("scenario metadata_ui step 0 (click_text): element not found"),
	})
	rep.Finish(false)

	doc := string(rep.JSON())
	assert.Equal(t, "failed", gjson.Get(doc, "status").String())
	assert.Equal(t, "failed", gjson.Get(doc, "scenarios.0.status").String())
	assert.Contains(t, gjson.Get(doc, "scenarios.0.error").String(), "element not found")
	assert.Equal(t, "element not found", gjson.Get(doc, "scenarios.0.steps.0.error").String())
	assert.Equal(t, int64(0), gjson.Get(doc, "scenarios.0.artifacts.#").Int())
}

func TestReportWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")

	rep := New("http://127.0.0.1:8080")
	rep.Finish(true)
	require.NoError(t, rep.Write(path))

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	firstID := gjson.GetBytes(first, "run_id").String()

	rep2 := New("http://127.0.0.1:8080")
	rep2.Finish(true)
	require.NoError(t, rep2.Write(path))

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, firstID, gjson.GetBytes(second, "run_id").String())
}
