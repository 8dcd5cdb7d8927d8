// Package types provides shared types for the run report
package types

import "time"

// TableStat compares the rows a table was asked for with the rows written
type TableStat struct {
	Table     string `json:"table"`
	Requested int    `json:"requested"`
	Produced  int    `json:"produced"`
}

// Degraded reports whether the table came out short
func (s TableStat) Degraded() bool {
	return s.Produced < s.Requested
}

// Warning is a best-effort shortfall surfaced to the operator
type Warning struct {
	Table   string `json:"table"`
	Message string `json:"message"`
}

// Report summarizes one generation run
type Report struct {
	RunID     string        `json:"run_id"`
	Seed      int64         `json:"seed"`
	Output    string        `json:"output"`
	Tables    []TableStat   `json:"tables"`
	Warnings  []Warning     `json:"warnings,omitempty"`
	Duration  time.Duration `json:"duration"`
	TotalRows int           `json:"total_rows"`
}

// Record appends a table result, merging with an existing entry for the same table
func (r *Report) Record(table string, requested, produced int) {
	for i := range r.Tables {
		if r.Tables[i].Table == table {
			r.Tables[i].Requested += requested
			r.Tables[i].Produced += produced
			r.TotalRows += produced
			return
		}
	}
	r.Tables = append(r.Tables, TableStat{Table: table, Requested: requested, Produced: produced})
	r.TotalRows += produced
}

// Warn adds a warning to the report
func (r *Report) Warn(table, message string) {
	r.Warnings = append(r.Warnings, Warning{Table: table, Message: message})
}

// Table returns the stat recorded for a table
func (r *Report) Table(table string) (TableStat, bool) {
	for _, s := range r.Tables {
		if s.Table == table {
			return s, true
		}
	}
	return TableStat{}, false
}
