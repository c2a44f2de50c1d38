package engine

import "time"

// Result summarizes a run.
type Result struct {
	OutputDir  string
	Tables     []TableStats
	Statements int   // statements read from the source
	Creates    int   // CREATE TABLE statements
	Inserts    int   // INSERT statements
	Ignored    int   // statements of any other kind
	Rows       int64 // data rows written across all tables
	Elapsed    time.Duration
}

// TableStats describes one table file.
type TableStats struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Columns int    `json:"columns"`
	Rows    int64  `json:"rows"`
	Bytes   int64  `json:"bytes"`
}
