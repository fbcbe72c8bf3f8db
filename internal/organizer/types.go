package organizer

import (
	"time"

	"docshelf/internal/category"
)

// FileMatch records one file that cleared the matching threshold. Immutable
// once produced.
type FileMatch struct {
	FilePath      string
	CompanyName   string
	MatchScore    float64
	MatchedText   string
	Category      category.Category
	SuggestedPath string
	FileDate      time.Time
	HasDate       bool
	FileSize      int64
}

// Result aggregates one organization run. It is built once per run and
// never mutated after return.
type Result struct {
	TotalFiles      int
	ProcessedFiles  int
	SuccessfulMoves int
	FailedMoves     int
	SkippedFiles    int
	Matches         []FileMatch
	Errors          []string
}

// Progress is the synchronous notification interface invoked at phase
// boundaries and per item. Implementations must not block significantly;
// they run inline with the scan/match/move loop.
type Progress func(phase string, current, total int)

// Phase names reported through Progress.
const (
	PhaseScan    = "scan"
	PhaseAnalyze = "analyze"
	PhaseMove    = "move"
)
