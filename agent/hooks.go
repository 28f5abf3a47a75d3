package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrToolDenied is returned when a hook refuses a tool invocation.
var ErrToolDenied = errors.New("tool call denied")

// Hook receives agent lifecycle events. All methods may veto by returning
// an error, except PostToolCall which is observational.
type Hook interface {
	PreRun(ctx context.Context, input string) error
	PostRun(ctx context.Context, result *RunResult) error
	PreToolCall(ctx context.Context, name string, args map[string]any) error
	PostToolCall(ctx context.Context, name string, trace ToolTrace)
}

// NopHook implements Hook with no-ops. Embed it to implement only the
// events you care about.
type NopHook struct{}

func (NopHook) PreRun(context.Context, string) error                      { return nil }
func (NopHook) PostRun(context.Context, *RunResult) error                 { return nil }
func (NopHook) PreToolCall(context.Context, string, map[string]any) error { return nil }
func (NopHook) PostToolCall(context.Context, string, ToolTrace)           {}

// ApprovalHook asks the user to confirm every tool call before it runs.
// Anything other than "y" or "yes" denies the call.
type ApprovalHook struct {
	NopHook
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

func (h *ApprovalHook) PreToolCall(_ context.Context, name string, args map[string]any) error {
	if h.reader == nil {
		h.reader = bufio.NewReader(h.In)
	}

	fmt.Fprintf(h.Out, "Allow tool call %s(%s)? [y/N] ", name, formatArgs(args))

	line, err := h.reader.ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("%w: %v", ErrToolDenied, err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrToolDenied, name)
	}
}

// TraceHook logs every lifecycle event through a zap logger.
type TraceHook struct {
	Logger *zap.Logger
}

func (h *TraceHook) PreRun(_ context.Context, input string) error {
	h.Logger.Info("run started", zap.Int("input_len", len(input)))
	return nil
}

func (h *TraceHook) PostRun(_ context.Context, result *RunResult) error {
	h.Logger.Info("run finished",
		zap.String("agent", result.AgentName),
		zap.Int("output_len", len(result.Output)),
		zap.Int("tool_calls", len(result.ToolCalls)),
		zap.Duration("duration", result.Duration),
	)
	return nil
}

func (h *TraceHook) PreToolCall(_ context.Context, name string, args map[string]any) error {
	h.Logger.Info("tool call requested",
		zap.String("tool", name),
		zap.Any("args", args),
	)
	return nil
}

func (h *TraceHook) PostToolCall(_ context.Context, name string, trace ToolTrace) {
	fields := []zap.Field{
		zap.String("tool", name),
		zap.Duration("duration", trace.Duration),
	}
	if trace.Error != "" {
		fields = append(fields, zap.String("error", trace.Error))
		h.Logger.Warn("tool call failed", fields...)
		return
	}
	fields = append(fields, zap.Int("result_len", len(trace.Result)))
	h.Logger.Info("tool call completed", fields...)
}

func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, args[k]))
	}
	return strings.Join(parts, ", ")
}

func (a *Agent) firePreRun(ctx context.Context, input string) error {
	for _, h := range a.hooks {
		if err := h.PreRun(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

func (a *Agent) firePostRun(ctx context.Context, result *RunResult) error {
	for _, h := range a.hooks {
		if err := h.PostRun(ctx, result); err != nil {
			return err
		}
	}
	return nil
}

func (a *Agent) firePreToolCall(ctx context.Context, name string, args map[string]any) error {
	for _, h := range a.hooks {
		if err := h.PreToolCall(ctx, name, args); err != nil {
			return err
		}
	}
	return nil
}

func (a *Agent) firePostToolCall(ctx context.Context, name string, trace ToolTrace) {
	for _, h := range a.hooks {
		h.PostToolCall(ctx, name, trace)
	}
}
