package domain

import "time"

// Summary holds the run counters and the per-category tallies.
type Summary struct {
	Total           int            `json:"total"`
	Success         int            `json:"success"`
	Errors          int            `json:"errors"`
	EquipmentStats  map[string]int `json:"equipment_stats"`
	DifficultyStats map[string]int `json:"difficulty_stats"`
}

// Report is built incrementally over a run and written once at the end.
type Report struct {
	RunID      string     `json:"run_id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
	Processed  []Exercise `json:"processed"`
	Errors     []string   `json:"errors"`
	Summary    Summary    `json:"summary"`
}

// NewReport returns an empty report with every collection initialised,
// so that an empty run still serialises as [] and {}.
func NewReport(runID string, startedAt time.Time) *Report {
	return &Report{
		RunID:     runID,
		StartedAt: startedAt,
		Processed: []Exercise{},
		Errors:    []string{},
		Summary: Summary{
			EquipmentStats:  map[string]int{},
			DifficultyStats: map[string]int{},
		},
	}
}

// RecordSuccess appends a fully processed exercise and buckets its categories.
func (r *Report) RecordSuccess(ex Exercise) {
	r.Processed = append(r.Processed, ex)
	r.Summary.Total++
	r.Summary.Success++
	r.Summary.EquipmentStats[ex.Equipment]++
	r.Summary.DifficultyStats[ex.Difficulty]++
}

// RecordFailure registers an item identifier ("{folder}/{filename}") that did not make it through.
func (r *Report) RecordFailure(item string) {
	r.Errors = append(r.Errors, item)
	r.Summary.Total++
	r.Summary.Errors++
}
