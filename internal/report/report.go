// Package report records what a pipeline run read, wrote and matched.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aimoviesearch/moviedata/internal/plots"
	"github.com/aimoviesearch/moviedata/internal/posters"
	"github.com/aimoviesearch/moviedata/internal/store"
)

const timestampLayout = "2006-01-02_15-04-05"

// RunConfig is the configuration section of a run report.
type RunConfig struct {
	Catalog      string            `yaml:"catalog"`
	Plots        string            `yaml:"plots"`
	Intermediate string            `yaml:"intermediate"`
	Output       string            `yaml:"output"`
	Database     string            `yaml:"database,omitempty"`
	Columns      map[string]string `yaml:"columns"`
}

// Timing records when the run started and how long each stage took.
type Timing struct {
	StartedAt string            `yaml:"started_at"`
	Total     string            `yaml:"total"`
	Stages    map[string]string `yaml:"stages"`
}

// Report is the complete record of one run.
type Report struct {
	Config  RunConfig          `yaml:"config"`
	Join    plots.Stats        `yaml:"join"`
	Posters posters.Stats      `yaml:"posters"`
	Import  *store.ImportStats `yaml:"import,omitempty"`
	Timing  Timing             `yaml:"timing"`
}

// New starts a report for a run beginning at started.
func New(cfg RunConfig, started time.Time) *Report {
	return &Report{
		Config: cfg,
		Timing: Timing{
			StartedAt: started.Format(time.RFC3339),
			Stages:    make(map[string]string),
		},
	}
}

// Stage records the duration of a named stage.
func (r *Report) Stage(name string, d time.Duration) {
	r.Timing.Stages[name] = d.Round(time.Millisecond).String()
}

// Finish records the total duration.
func (r *Report) Finish(d time.Duration) {
	r.Timing.Total = d.Round(time.Millisecond).String()
}

// Save writes the report to dir/run-<timestamp>.yaml and returns the path.
func Save(dir string, r *Report, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("run-%s.yaml", now.Format(timestampLayout)))

	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}

// Load reads a report written by Save.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &r, nil
}
