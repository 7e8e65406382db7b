package transport

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/corvid-labs/skillwalk/pkg/model"
	"github.com/corvid-labs/skillwalk/pkg/traversal"
)

// NewServer registers start_exploration, step, status, and finalize on a
// fresh MCP server backed by c, following pkg/lsp/handler.go's
// dispatch-table shape (one named operation, one handler method).
func NewServer(c *Controller) *server.MCPServer {
	s := server.NewMCPServer(
		"skillwalk",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	s.AddTool(mcp.NewTool("start_exploration",
		mcp.WithDescription("Begin exploring a mirrored application's UI from its first captured screen."),
		mcp.WithString("app_name", mcp.Required(), mcp.Description("Display name of the app under exploration")),
		mcp.WithString("goal", mcp.Description("Optional current exploration goal")),
		mcp.WithArray("goals", mcp.Description("Optional queue of further goals to explore after this one")),
		mcp.WithString("strategy", mcp.Description("Explicit strategy override: mobile, desktop, or social")),
		mcp.WithString("target_type", mcp.Description("Window target type, e.g. generic-window")),
		mcp.WithString("bundle_id", mcp.Description("App bundle identifier, used for strategy detection")),
		mcp.WithArray("elements", mcp.Required(), mcp.Description("Initial OCR elements: [{text, tap_x, tap_y}]")),
		mcp.WithNumber("window_width", mcp.Required()),
		mcp.WithNumber("window_height", mcp.Required()),
		mcp.WithNumber("icons", mcp.Description("Count of icon-only (textless) elements")),
	), c.handleStartExploration)

	s.AddTool(mcp.NewTool("step",
		mcp.WithDescription("Advance one exploration session by a single tick."),
		mcp.WithString("session_id", mcp.Required()),
	), c.handleStep)

	s.AddTool(mcp.NewTool("status",
		mcp.WithDescription("Report a session's current goal, mode, and progress."),
		mcp.WithString("session_id", mcp.Required()),
	), c.handleStatus)

	s.AddTool(mcp.NewTool("finalize",
		mcp.WithDescription("Force the current goal to completion and persist its skill bundle."),
		mcp.WithString("session_id", mcp.Required()),
		mcp.WithString("generated_at", mcp.Required(), mcp.Description("RFC3339 timestamp stamped into the bundle's front matter")),
	), c.handleFinalize)

	return s
}

func (c *Controller) handleStartExploration(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("missing arguments"), nil
	}

	elements, err := parseElements(args["elements"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sessionID, err := c.StartExploration(ctx, StartExplorationRequest{
		AppName:          stringArg(args, "app_name"),
		Goal:             stringArg(args, "goal"),
		Goals:            stringArrayArg(args, "goals"),
		ExplicitStrategy: stringArg(args, "strategy"),
		TargetType:       stringArg(args, "target_type"),
		BundleID:         stringArg(args, "bundle_id"),
		InitialElements:  elements,
		InitialHints: model.ScreenHints{
			WindowWidth:  floatArg(args, "window_width"),
			WindowHeight: floatArg(args, "window_height"),
		},
		InitialIcons: int(floatArg(args, "icons")),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("session_id: %s", sessionID)), nil
}

func (c *Controller) handleStep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := req.Params.Arguments.(map[string]any)
	result, err := c.Step(ctx, stringArg(args, "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(renderStepResult(result)), nil
}

func (c *Controller) handleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := req.Params.Arguments.(map[string]any)
	st, err := c.Status(stringArg(args, "session_id"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"active=%v mode=%s goal=%q remaining_goals=%d screens=%d nodes=%d",
		st.Active, st.Mode, st.Goal, len(st.RemainingGoals), st.ScreenCount, st.NodeCount,
	)), nil
}

func (c *Controller) handleFinalize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := req.Params.Arguments.(map[string]any)
	bundle, err := c.Finalize(stringArg(args, "session_id"), stringArg(args, "generated_at"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("wrote %d skill(s) to %s", len(bundle.Skills), c.outputDir)), nil
}

func renderStepResult(r traversal.StepResult) string {
	switch r.Kind {
	case traversal.ResultFinished:
		return fmt.Sprintf("finished: %d screens logged", len(r.Bundle.Screens))
	case traversal.ResultPaused:
		return "paused: " + r.Reason
	case traversal.ResultBacktracked:
		return fmt.Sprintf("backtracked %s -> %s", r.From, r.To)
	default:
		return "continue: " + r.Description
	}
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func floatArg(args map[string]any, key string) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return 0
}

func stringArrayArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func parseElements(raw any) ([]model.TapPoint, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("elements must be an array")
	}
	out := make([]model.TapPoint, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("each element must be an object")
		}
		out = append(out, model.TapPoint{
			Text: stringArg(m, "text"),
			TapX: floatArg(m, "tap_x"),
			TapY: floatArg(m, "tap_y"),
		})
	}
	return out, nil
}
