package bridge

import "fmt"

// Pipeline phases reported in PipelineError.
const (
	PhaseRead     = "read"
	PhaseTokenize = "tokenize"
	PhaseDecode   = "decode"
	PhaseExport   = "export"
	PhaseStore    = "store"
	PhaseGenerate = "generate"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}
