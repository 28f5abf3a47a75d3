package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agentlab/model"
)

// Fragment is one element of a streamed response. Err is set on the final
// fragment when the stream terminated abnormally.
type Fragment struct {
	Text string
	Err  error
}

// RunStream executes a tool-free turn and returns a channel of response
// fragments. The channel is closed when the response is complete. The
// sequence is lazy: fragments are produced as the backend delivers them,
// and cancelling ctx stops production between fragments.
//
// The consumer must drain the channel; the full response is appended to
// the agent's memory once the stream finishes cleanly.
func (a *Agent) RunStream(ctx context.Context, input string) (<-chan Fragment, error) {
	if err := a.firePreRun(ctx, input); err != nil {
		return nil, err
	}

	a.remember("user", input)
	messages := a.buildMessages()

	ch := make(chan Fragment)
	go func() {
		defer close(ch)

		start := time.Now()
		var full strings.Builder

		err := a.client.Chat(ctx, messages, func(chunk string, _ []model.ToolCall) error {
			full.WriteString(chunk)
			select {
			case ch <- Fragment{Text: chunk}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil {
			ch <- Fragment{Err: fmt.Errorf("agent %s: %w", a.name, err)}
			return
		}

		a.remember("assistant", full.String())

		result := &RunResult{
			AgentName: a.name,
			Output:    full.String(),
			Duration:  time.Since(start),
		}
		if err := a.firePostRun(ctx, result); err != nil {
			ch <- Fragment{Err: err}
		}
	}()

	return ch, nil
}
