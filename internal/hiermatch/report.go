package hiermatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SummaryConfig records the inputs and options of a match run.
type SummaryConfig struct {
	Reference        string `yaml:"reference"`
	Comparison       string `yaml:"comparison"`
	PrimaryKey       string `yaml:"primarykey"`
	PhoneKey         string `yaml:"phonekey,omitempty"`
	DateKey          string `yaml:"datekey,omitempty"`
	ToleranceSeconds int    `yaml:"toleranceseconds"`
	Timestamp        string `yaml:"timestamp"`
}

// RunSummary is the YAML shape of a match run report.
type RunSummary struct {
	RunID     string         `yaml:"runid"`
	Config    SummaryConfig  `yaml:"config"`
	Reference int            `yaml:"referencerows"`
	Matched   int            `yaml:"matched"`
	Unmatched int            `yaml:"unmatched"`
	Levels    map[string]int `yaml:"levels"`
}

// NewRunSummary assembles a summary for one completed match.
func NewRunSummary(referencePath, comparisonPath string, cfg Config, totalRows int, result *Result) RunSummary {
	levels := make(map[string]int, len(result.Levels))
	for level, n := range result.Levels {
		levels[string(level)] = n
	}

	return RunSummary{
		RunID: uuid.NewString(),
		Config: SummaryConfig{
			Reference:        referencePath,
			Comparison:       comparisonPath,
			PrimaryKey:       cfg.PrimaryKey,
			PhoneKey:         cfg.PhoneKey,
			DateKey:          cfg.DateKey,
			ToleranceSeconds: int(cfg.Tolerance / time.Second),
			Timestamp:        time.Now().Format("2006-01-02_15-04-05"),
		},
		Reference: totalRows,
		Matched:   len(result.Matched),
		Unmatched: len(result.Unmatched),
		Levels:    levels,
	}
}

// WriteSummary saves the run summary as YAML.
func (s RunSummary) WriteSummary(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create summary directory: %w", err)
		}
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write YAML file: %w", err)
	}

	return nil
}

// SiblingPaths derives the debug output paths from the main output path:
// {stem}_UNMATCHED{ext} for the unmatched rows and {stem}_DEBUG.txt for the
// per-row diagnostics.
func SiblingPaths(outputPath string) (unmatchedPath, debugPath string) {
	ext := filepath.Ext(outputPath)
	stem := strings.TrimSuffix(outputPath, ext)
	return stem + "_UNMATCHED" + ext, stem + "_DEBUG.txt"
}

// WriteDebugReport emits the per-row unmatched diagnostics as a plain-text
// report.
func WriteDebugReport(path, outputPath string, unmatched []UnmatchedRow) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Debug Information for %s\n", outputPath)
	b.WriteString(strings.Repeat("=", 80) + "\n\n")
	fmt.Fprintf(&b, "Total unmatched rows: %d\n\n", len(unmatched))
	b.WriteString("Unmatched Row Details:\n")
	b.WriteString(strings.Repeat("-", 80) + "\n")

	for _, u := range unmatched {
		fmt.Fprintf(&b, "\nRow Index: %d\n", u.RowIndex)
		fmt.Fprintf(&b, "Primary Key: %s\n", u.PrimaryKey)
		if u.Phone != "" {
			fmt.Fprintf(&b, "Phone: %s\n", u.Phone)
		}
		if u.Date != "" {
			fmt.Fprintf(&b, "Date: %s\n", u.Date)
		}
		fmt.Fprintf(&b, "Reason: %s\n", u.Reason)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write debug report: %w", err)
	}

	return nil
}
