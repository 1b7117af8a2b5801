package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/gymstats/internal/gymstats/history"
	"github.com/2beens/gymstats/internal/gymstats/progress"
	"github.com/2beens/gymstats/internal/gymstats/workout"
)

// ErrSchemaUnavailable is returned when sessions are not kept in postgres.
var ErrSchemaUnavailable = errors.New("schema is only available with the postgres store")

type progressAggregator interface {
	Progress(ctx context.Context, userID, exercise string) (*progress.ExerciseProgress, error)
	Catalog(ctx context.Context, userID string) ([]string, error)
	DailyStats(ctx context.Context, userID, exercise string) ([]progress.DayStats, error)
}

type sessionsLister interface {
	ListByUser(ctx context.Context, userID string) ([]*workout.Session, error)
}

// contextService provides gymstats context data (schema, progress, catalog, history).
// Used by Handler for testability.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	GetProgress(ctx context.Context, userID, exercise string) (*progress.ExerciseProgress, error)
	GetCatalog(ctx context.Context, userID string) ([]string, error)
	GetDailyStats(ctx context.Context, userID, exercise string) ([]progress.DayStats, error)
	GetRecentHistory(ctx context.Context, userID string, limit int) (string, error)
}

// ContextService holds dependencies and implements the gymstats context business logic.
type ContextService struct {
	schema     SchemaRepo
	aggregator progressAggregator
	sessions   sessionsLister
}

// NewContextService builds a ContextService. schemaRepo may be nil.
func NewContextService(schemaRepo SchemaRepo, aggregator progressAggregator, sessions sessionsLister) *ContextService {
	return &ContextService{
		schema:     schemaRepo,
		aggregator: aggregator,
		sessions:   sessions,
	}
}

// GetSchema returns the DB schema (table names, columns, types) of the session tables.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	if s.schema == nil {
		return "", ErrSchemaUnavailable
	}
	cols, err := s.schema.GetGymstatsColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatGymstatsSchema(cols), nil
}

func formatGymstatsSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Gymstats DB Schema\n\nNo gymstats tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Gymstats DB Schema\n\n")
	b.WriteString("Tables: ")
	b.WriteString(strings.Join(tableOrder, ", "))
	b.WriteString(" (schema: public). Exercises are kept as a JSONB array on each session.\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

// GetProgress returns the per-day volume of an exercise, with suggestions when the name is unknown.
func (s *ContextService) GetProgress(ctx context.Context, userID, exercise string) (*progress.ExerciseProgress, error) {
	return s.aggregator.Progress(ctx, userID, exercise)
}

// GetCatalog returns the distinct normalized exercise names of a user.
func (s *ContextService) GetCatalog(ctx context.Context, userID string) ([]string, error) {
	return s.aggregator.Catalog(ctx, userID)
}

// GetDailyStats returns per-day sets, reps, weights and volume of an exercise.
func (s *ContextService) GetDailyStats(ctx context.Context, userID, exercise string) ([]progress.DayStats, error) {
	return s.aggregator.DailyStats(ctx, userID, exercise)
}

// GetRecentHistory renders the latest logged sessions of a user as text, newest first.
func (s *ContextService) GetRecentHistory(ctx context.Context, userID string, limit int) (string, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	logged := make([]*workout.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.IsLogged() {
			logged = append(logged, session)
		}
	}

	return history.FormatRecentHistory(logged, limit), nil
}
