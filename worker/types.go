package worker

import (
	"sync/atomic"
	"time"

	"github.com/andys/etl/table"
)

// Progress tracks the progress of file extraction
type Progress struct {
	CurrentFile    string
	TotalFiles     int64
	ProcessedFiles atomic.Int64
	SkippedFiles   atomic.Int64
	ExtractedRows  atomic.Int64
	StartTime      time.Time
}

// Sink receives the transformed table
type Sink interface {
	Load(t *table.Table) error
}
