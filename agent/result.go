package agent

import (
	"time"

	"agentlab/model"
)

// ToolTrace records a single tool invocation made during a run.
type ToolTrace struct {
	Name      string
	Arguments map[string]any
	Result    string
	Error     string
	Duration  time.Duration
}

// RunResult is the outcome of one completed agent turn.
type RunResult struct {
	AgentName string
	Output    string
	Usage     model.Usage
	ToolCalls []ToolTrace
	Duration  time.Duration
}
