package progress

import (
	"context"
	"fmt"

	"github.com/2beens/gymstats/internal/gymstats/workout"
	"github.com/2beens/gymstats/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=progress_test

type sessionsLister interface {
	ListByUser(ctx context.Context, userID string) ([]*workout.Session, error)
}

// ExerciseProgress is the progress series of one exercise. When the series is empty,
// Suggestions holds the catalog names the query might have meant.
type ExerciseProgress struct {
	Exercise    string          `json:"exercise"`
	Points      []ProgressPoint `json:"points"`
	Suggestions []string        `json:"didYouMean,omitempty"`
}

// Aggregator computes read side views over all sessions of a user.
// Nothing is cached between calls.
type Aggregator struct {
	sessions sessionsLister
}

func NewAggregator(sessions sessionsLister) *Aggregator {
	return &Aggregator{
		sessions: sessions,
	}
}

func (a *Aggregator) Progress(ctx context.Context, userID, exercise string) (_ *ExerciseProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.gymstats.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("exercise", exercise))

	sessions, err := a.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	p := &ExerciseProgress{
		Exercise: workout.Normalize(exercise),
		Points:   Progress(sessions, exercise),
	}
	if len(p.Points) == 0 {
		p.Suggestions = workout.Suggest(ExerciseCatalog(sessions), exercise)
	}

	span.SetAttributes(attribute.Int("points", len(p.Points)))
	return p, nil
}

func (a *Aggregator) Catalog(ctx context.Context, userID string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.gymstats.catalog")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	sessions, err := a.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return ExerciseCatalog(sessions), nil
}

func (a *Aggregator) DailyStats(ctx context.Context, userID, exercise string) (_ []DayStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "aggregator.gymstats.daily-stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.String("exercise", exercise))

	sessions, err := a.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return DailyStats(sessions, exercise), nil
}
