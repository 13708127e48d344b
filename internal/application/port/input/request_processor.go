package input

import (
	"context"

	"maillet-agent/internal/domain/entity"
)

type ProcessResult struct {
	FinalAnswer string
	Iterations  int
}

// RequestProcessor runs the agent loop for one inbound email.
type RequestProcessor interface {
	Process(ctx context.Context, email entity.InboundEmail) (*ProcessResult, error)
}
