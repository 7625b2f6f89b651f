package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/paulstansifer/number-loom/internal/runner"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/sjson"
)

// Report accumulates the outcome of a verification run as a JSON document.
type Report struct {
	data []byte
}

func New(targetURL string) *Report {
	data := []byte(`{}`)
	data, _ = sjson.SetBytes(data, "run_id", uuid.NewString())
	data, _ = sjson.SetBytes(data, "target_url", targetURL)
	data, _ = sjson.SetBytes(data, "started_at", time.Now().Format(time.RFC3339))
	data, _ = sjson.SetRawBytes(data, "scenarios", []byte(`[]`))
	return &Report{data: data}
}

// AddScenario appends one scenario result, including artifact byte sizes as
// they exist on disk at call time.
func (r *Report) AddScenario(result *runner.Result) {
	entry := []byte(`{}`)
	entry, _ = sjson.SetBytes(entry, "name", result.Name)

	status := "passed"
	if result.Err != nil {
		status = "failed"
		entry, _ = sjson.SetBytes(entry, "error", result.Err.Error())
	}
	entry, _ = sjson.SetBytes(entry, "status", status)

	for _, step := range result.Steps {
		stepEntry := []byte(`{}`)
		stepEntry, _ = sjson.SetBytes(stepEntry, "action", step.Action)
		if len(step.Params) > 0 {
			stepEntry, _ = sjson.SetBytes(stepEntry, "params", step.Params)
		}
		if step.Error != "" {
			stepEntry, _ = sjson.SetBytes(stepEntry, "error", step.Error)
		}
		entry, _ = sjson.SetRawBytes(entry, "steps.-1", stepEntry)
	}

	for _, artifact := range result.Artifacts {
		artifactEntry := []byte(`{}`)
		artifactEntry, _ = sjson.SetBytes(artifactEntry, "path", artifact)
		if info, err := os.Stat(artifact); err == nil {
			artifactEntry, _ = sjson.SetBytes(artifactEntry, "bytes", info.Size())
		} else {
			log.Debugf("Artifact %s not found while building report: %v", artifact, err)
		}
		entry, _ = sjson.SetRawBytes(entry, "artifacts.-1", artifactEntry)
	}

	r.data, _ = sjson.SetRawBytes(r.data, "scenarios.-1", entry)
}

// Finish stamps the end time and overall status.
func (r *Report) Finish(passed bool) {
	status := "passed"
	if !passed {
		status = "failed"
	}
	r.data, _ = sjson.SetBytes(r.data, "status", status)
	r.data, _ = sjson.SetBytes(r.data, "ended_at", time.Now().Format(time.RFC3339))
}

func (r *Report) JSON() []byte {
	return r.data
}

// Write persists the report, overwriting any prior file at path.
func (r *Report) Write(path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, r.data, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	log.Infof("Run report written to %s", path)
	return nil
}
