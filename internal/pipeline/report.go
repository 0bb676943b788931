package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"alcyxob/exercise-importer/internal/domain"
)

// EncodeReport writes the report as indented JSON. Non-ASCII text is kept
// literal and HTML characters are not escaped.
func EncodeReport(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteReport saves the report to path, replacing any previous file.
func WriteReport(path string, report *domain.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report %s: %w", path, err)
	}
	if err := EncodeReport(f, report); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode report %s: %w", path, err)
	}
	return f.Close()
}

// LogSummary prints the final counters and tallies.
func LogSummary(report *domain.Report) {
	s := report.Summary
	log.Printf("Processing finished (run %s)", report.RunID)
	log.Printf("  Total: %d  Success: %d  Errors: %d", s.Total, s.Success, s.Errors)
	log.Printf("  Equipment:")
	logTally(s.EquipmentStats)
	log.Printf("  Difficulty:")
	logTally(s.DifficultyStats)
	for _, item := range report.Errors {
		log.Printf("  Failed: %s", item)
	}
}

func logTally(tally map[string]int) {
	labels := make([]string, 0, len(tally))
	for label := range tally {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		log.Printf("    %-14s %d", label, tally[label])
	}
}
