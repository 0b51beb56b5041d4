package model

import "github.com/google/uuid"

// RunID identifies one end-to-end orchestrator invocation for logs,
// metrics and progress reporting. It has no bearing on scheduling
// semantics — employees and schedules are keyed by their own text IDs.
type RunID = uuid.UUID

// NewRunID mints a fresh run identifier.
func NewRunID() RunID {
	return uuid.New()
}
