package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

// GetGymstatsContextTool returns the MCP tool handler for get_gymstats_context.
func (h *Handler) GetGymstatsContextTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// ExerciseInput is the input for get_exercise_progress and get_daily_stats.
type ExerciseInput struct {
	UserID   string `json:"user_id" jsonschema:"Owner of the workout sessions"`
	Exercise string `json:"exercise" jsonschema:"Exercise name, matched case and whitespace insensitive (e.g. bench press)"`
}

func (in ExerciseInput) validate() string {
	switch {
	case strings.TrimSpace(in.UserID) == "":
		return "user_id is required"
	case strings.TrimSpace(in.Exercise) == "":
		return "exercise is required"
	}
	return ""
}

// GetExerciseProgressTool returns the MCP tool handler for get_exercise_progress.
func (h *Handler) GetExerciseProgressTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		if msg := in.validate(); msg != "" {
			return errorResult("Invalid input: " + msg), nil, nil
		}
		p, err := h.service.GetProgress(ctx, in.UserID, in.Exercise)
		if err != nil {
			return errorResult("Error fetching progress: " + err.Error()), nil, nil
		}
		return jsonResult(p), nil, nil
	}
}

// GetDailyStatsTool returns the MCP tool handler for get_daily_stats.
func (h *Handler) GetDailyStatsTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		if msg := in.validate(); msg != "" {
			return errorResult("Invalid input: " + msg), nil, nil
		}
		days, err := h.service.GetDailyStats(ctx, in.UserID, in.Exercise)
		if err != nil {
			return errorResult("Error fetching daily stats: " + err.Error()), nil, nil
		}
		return jsonResult(days), nil, nil
	}
}

// UserInput is the input for get_exercise_catalog.
type UserInput struct {
	UserID string `json:"user_id" jsonschema:"Owner of the workout sessions"`
}

// GetExerciseCatalogTool returns the MCP tool handler for get_exercise_catalog.
func (h *Handler) GetExerciseCatalogTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(in.UserID) == "" {
			return errorResult("Invalid input: user_id is required"), nil, nil
		}
		catalog, err := h.service.GetCatalog(ctx, in.UserID)
		if err != nil {
			return errorResult("Error fetching catalog: " + err.Error()), nil, nil
		}
		return jsonResult(catalog), nil, nil
	}
}

// RecentHistoryInput is the input for get_recent_history.
type RecentHistoryInput struct {
	UserID string `json:"user_id" jsonschema:"Owner of the workout sessions"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max number of sessions (default 20)"`
}

// GetRecentHistoryTool returns the MCP tool handler for get_recent_history.
func (h *Handler) GetRecentHistoryTool() func(context.Context, *mcp.CallToolRequest, RecentHistoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RecentHistoryInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(in.UserID) == "" {
			return errorResult("Invalid input: user_id is required"), nil, nil
		}
		if in.Limit < 0 {
			return errorResult("Invalid input: limit must not be negative"), nil, nil
		}
		text, err := h.service.GetRecentHistory(ctx, in.UserID, in.Limit)
		if err != nil {
			return errorResult("Error fetching history: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}
