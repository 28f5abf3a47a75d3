// Package agent wraps a chat client in a named, instruction-bound
// conversational agent. The agent owns the conversation memory, executes
// tool calls against a registry, and exposes lifecycle hooks so labs can
// intercept runs without touching the client.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"agentlab/mcp"
	"agentlab/model"
)

// maxToolRounds bounds the request/tool/request loop so a model that keeps
// asking for tools cannot spin forever.
const maxToolRounds = 4

// Agent is a named wrapper around a ChatClient plus the tools it may invoke.
type Agent struct {
	name         string
	instructions string
	client       model.ChatClient
	registry     *mcp.Registry
	hooks        []Hook
	messages     []model.Message
}

// Option configures an Agent at construction.
type Option func(*Agent)

// WithTools attaches a tool registry; its definitions are offered to the
// model on every run.
func WithTools(registry *mcp.Registry) Option {
	return func(a *Agent) { a.registry = registry }
}

// WithHook appends a lifecycle hook. Hooks run in registration order.
func WithHook(hook Hook) Option {
	return func(a *Agent) { a.hooks = append(a.hooks, hook) }
}

// New constructs an agent. Instructions become the system message on every
// request; an empty string omits it.
func New(name, instructions string, client model.ChatClient, opts ...Option) *Agent {
	a := &Agent{
		name:         name,
		instructions: instructions,
		client:       client,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Client exposes the underlying chat client.
func (a *Agent) Client() model.ChatClient { return a.client }

// Messages returns a copy of the accumulated conversation, without the
// system instructions.
func (a *Agent) Messages() []model.Message {
	out := make([]model.Message, len(a.messages))
	copy(out, a.messages)
	return out
}

// LoadMessages seeds the conversation memory, replacing any prior turns.
// Used to resume a persisted thread.
func (a *Agent) LoadMessages(messages []model.Message) {
	a.messages = make([]model.Message, len(messages))
	copy(a.messages, messages)
}

// Reset clears the conversation memory.
func (a *Agent) Reset() {
	a.messages = nil
}

// Run executes a single turn to completion: send the conversation, execute
// any requested tool calls, feed results back, and return the final text.
func (a *Agent) Run(ctx context.Context, input string) (*RunResult, error) {
	start := time.Now()

	if err := a.firePreRun(ctx, input); err != nil {
		return nil, err
	}

	a.remember("user", input)

	result := &RunResult{AgentName: a.name}

	var tools []mcptypes.Tool
	if a.registry != nil {
		tools = a.registry.Definitions()
	}

	for round := 0; ; round++ {
		var output strings.Builder
		var pendingCalls []model.ToolCall

		callback := func(chunk string, toolCalls []model.ToolCall) error {
			output.WriteString(chunk)
			pendingCalls = append(pendingCalls, toolCalls...)
			return nil
		}

		offered := tools
		if round >= maxToolRounds {
			offered = nil // force a textual answer
		}

		var err error
		if len(offered) > 0 {
			err = a.client.ChatWithTools(ctx, a.buildMessages(), offered, callback)
		} else {
			err = a.client.Chat(ctx, a.buildMessages(), callback)
		}
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.name, err)
		}

		if len(pendingCalls) == 0 || round >= maxToolRounds {
			result.Output = output.String()
			break
		}

		if text := output.String(); text != "" {
			a.remember("assistant", text)
		}

		for _, call := range pendingCalls {
			trace, err := a.executeTool(ctx, call)
			result.ToolCalls = append(result.ToolCalls, trace)
			if err != nil {
				return nil, err
			}
			a.remember("tool", fmt.Sprintf("Result of %s: %s", call.Name, trace.Result))
		}
	}

	a.remember("assistant", result.Output)
	result.Duration = time.Since(start)

	if err := a.firePostRun(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// Ask executes a single buffered turn with no tools, returning the
// provider response including token usage and response ID.
func (a *Agent) Ask(ctx context.Context, input string) (*model.Response, error) {
	if err := a.firePreRun(ctx, input); err != nil {
		return nil, err
	}

	a.remember("user", input)

	resp, err := a.client.Complete(ctx, a.buildMessages())
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", a.name, err)
	}

	a.remember("assistant", resp.Text)

	result := &RunResult{
		AgentName: a.name,
		Output:    resp.Text,
		Usage:     resp.Usage,
	}
	if err := a.firePostRun(ctx, result); err != nil {
		return nil, err
	}

	return resp, nil
}

func (a *Agent) executeTool(ctx context.Context, call model.ToolCall) (ToolTrace, error) {
	trace := ToolTrace{Name: call.Name, Arguments: call.Arguments}

	if a.registry == nil {
		trace.Error = "no tool registry attached"
		return trace, fmt.Errorf("agent %s: model requested tool %q but no registry is attached", a.name, call.Name)
	}

	if err := a.firePreToolCall(ctx, call.Name, call.Arguments); err != nil {
		trace.Error = err.Error()
		return trace, err
	}

	start := time.Now()
	output, err := a.registry.Call(ctx, call.Name, call.Arguments)
	trace.Duration = time.Since(start)

	if err != nil {
		// Tool failures go back to the model as text; it can apologize
		// or try another approach.
		trace.Error = err.Error()
		trace.Result = fmt.Sprintf("error: %v", err)
	} else {
		trace.Result = output
	}

	a.firePostToolCall(ctx, call.Name, trace)
	return trace, nil
}

func (a *Agent) buildMessages() []model.Message {
	messages := make([]model.Message, 0, len(a.messages)+1)
	if a.instructions != "" {
		messages = append(messages, model.Message{Role: "system", Content: a.instructions})
	}
	return append(messages, a.messages...)
}

func (a *Agent) remember(role, content string) {
	a.messages = append(a.messages, model.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}
