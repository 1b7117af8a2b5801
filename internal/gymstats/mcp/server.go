package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the gymstats tools. The schema tool is only
// registered when schemaRepo is set (postgres store).
// Used by the main backend when mounting MCP at /mcp and by cmd/gymstats_mcp over stdio.
func NewServer(schemaRepo SchemaRepo, aggregator progressAggregator, sessions sessionsLister) *mcp.Server {
	h := NewHandler(NewContextService(schemaRepo, aggregator, sessions))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "gymstats-context",
		Version: "1.0.0",
	}, nil)

	if schemaRepo != nil {
		mcp.AddTool(s, &mcp.Tool{
			Name:        "get_gymstats_context",
			Description: "Returns the DB schema of the workout session tables: table names, columns, types, nullable, default. Use when you need the actual backend schema.",
		}, h.GetGymstatsContextTool())
	}

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_progress",
		Description: "Returns the total volume (sum of reps x weight) per day for one exercise of a user. Args: user_id, exercise. When the exercise is unknown, similar names from the catalog are suggested. Use when asked how an exercise has improved.",
	}, h.GetExerciseProgressTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_daily_stats",
		Description: "Returns per-day sets, reps, average and max weight and volume for one exercise of a user. Args: user_id, exercise.",
	}, h.GetDailyStatsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_catalog",
		Description: "Returns the sorted list of distinct exercise names a user has ever recorded. Arg: user_id.",
	}, h.GetExerciseCatalogTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_recent_history",
		Description: "Returns the latest logged workouts of a user as plain text, newest first. Args: user_id; optional: limit (default 20).",
	}, h.GetRecentHistoryTool())

	return s
}
