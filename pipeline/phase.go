package pipeline

import "fmt"

// Phase is a logged boundary of a pipeline run
type Phase int

const (
	JobStarted Phase = iota
	ExtractStarted
	ExtractEnded
	TransformStarted
	TransformEnded
	LoadStarted
	LoadEnded
	JobEnded
)

var phaseMessages = [...]string{
	JobStarted:       "ETL Job Started",
	ExtractStarted:   "Extract phase Started",
	ExtractEnded:     "Extract phase Ended",
	TransformStarted: "Transform phase Started",
	TransformEnded:   "Transform phase Ended",
	LoadStarted:      "Load phase Started",
	LoadEnded:        "Load phase Ended",
	JobEnded:         "ETL Job Ended",
}

// Message is the text written to the log file at this boundary
func (p Phase) Message() string {
	if p < 0 || int(p) >= len(phaseMessages) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseMessages[p]
}

func (p Phase) String() string {
	return p.Message()
}

// Phases returns every boundary in the order a successful run logs them
func Phases() []Phase {
	phases := make([]Phase, 0, len(phaseMessages))
	for p := JobStarted; p <= JobEnded; p++ {
		phases = append(phases, p)
	}
	return phases
}
