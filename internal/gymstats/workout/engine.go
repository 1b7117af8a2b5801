package workout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/2beens/gymstats/internal/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=workout_test

// Store is the storage collaborator: a document store addressed by opaque session id.
// FindByID, Update and DeleteByID return ErrSessionNotFound for unknown ids.
type Store interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, id string) (*Session, error)
	FindAllByUser(ctx context.Context, userID string) ([]*Session, error)
	Update(ctx context.Context, session *Session) error
	DeleteByID(ctx context.Context, id string) error
}

// MatchStrategy decides how RemoveExercise matches the given name against stored names.
type MatchStrategy string

const (
	// MatchExact compares against the stored (already normalized) name as is.
	MatchExact MatchStrategy = "exact"
	// MatchNormalized normalizes the given name before comparing.
	MatchNormalized MatchStrategy = "normalized"
)

func ParseMatchStrategy(s string) (MatchStrategy, error) {
	switch MatchStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchExact:
		return MatchExact, nil
	case MatchNormalized:
		return MatchNormalized, nil
	default:
		return "", fmt.Errorf("unknown match strategy: %s", s)
	}
}

type EngineParams struct {
	Store Store
	// Clock defaults to SystemClock.
	Clock Clock
	// NewID defaults to random UUIDs.
	NewID func() string
	// RemoveMatch defaults to MatchExact.
	RemoveMatch MatchStrategy
	// LockLogged rejects structural edits of logged sessions. A remove that
	// matches nothing is still a no-op success.
	LockLogged bool
}

// Engine drives the session lifecycle: Start -> AddExercise/RemoveExercise -> Log,
// with Delete available in any state.
// Read-modify-write operations are not atomic, concurrent edits of the same
// session are last-write-wins, as provided by the store.
type Engine struct {
	store       Store
	clock       Clock
	newID       func() string
	removeMatch MatchStrategy
	lockLogged  bool
}

func NewEngine(params EngineParams) *Engine {
	e := &Engine{
		store:       params.Store,
		clock:       params.Clock,
		newID:       params.NewID,
		removeMatch: params.RemoveMatch,
		lockLogged:  params.LockLogged,
	}
	if e.clock == nil {
		e.clock = SystemClock
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	if e.removeMatch == "" {
		e.removeMatch = MatchExact
	}
	return e
}

type StartParams struct {
	UserID string
	// Date defaults to now.
	Date  *time.Time
	Label string
}

type ExerciseInput struct {
	Name    string    `json:"name"`
	Sets    int       `json:"sets"`
	Reps    []int     `json:"reps"`
	Weights []float64 `json:"weights"`
}

func (e *Engine) Start(ctx context.Context, params StartParams) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.gymstats.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))

	const op = "start"
	if strings.TrimSpace(params.UserID) == "" {
		return nil, newValidationError(op, "userId", "required")
	}

	now := e.clock.Now()
	date := now
	if params.Date != nil && !params.Date.IsZero() {
		date = *params.Date
	}

	session := &Session{
		ID:        e.newID(),
		UserID:    params.UserID,
		Label:     strings.TrimSpace(params.Label),
		Date:      date,
		State:     StateOpen,
		Exercises: make([]Exercise, 0),
		CreatedAt: now,
	}
	session.RecomputeVolume()

	if err := e.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%s: create session: %w", op, err)
	}

	span.SetAttributes(attribute.String("session_id", session.ID))
	return session, nil
}

func (e *Engine) AddExercise(ctx context.Context, sessionID string, in ExerciseInput) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.gymstats.add-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", sessionID))
	span.SetAttributes(attribute.String("exercise", in.Name))

	const op = "add exercise"
	if err := validateExercise(op, in); err != nil {
		return nil, err
	}

	session, err := e.find(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}
	if err := e.checkEditable(op, session); err != nil {
		return nil, err
	}

	session.Exercises = append(session.Exercises, NewExercise(
		Normalize(in.Name),
		in.Sets,
		append([]int(nil), in.Reps...),
		append([]float64(nil), in.Weights...),
	))
	session.RecomputeVolume()
	if math.IsInf(session.TotalVolume(), 0) {
		return nil, newValidationError(op, "weights", "session volume out of range")
	}

	if err := e.update(ctx, op, session); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Float64("session_volume", session.TotalVolume()))
	return session, nil
}

// RemoveExercise removes all entries matching the name, according to the engine's
// match strategy. Removing a name with no matches is not an error.
func (e *Engine) RemoveExercise(ctx context.Context, sessionID, name string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.gymstats.remove-exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", sessionID))
	span.SetAttributes(attribute.String("exercise", name))
	span.SetAttributes(attribute.String("match", string(e.removeMatch)))

	const op = "remove exercise"
	session, err := e.find(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}

	target := name
	if e.removeMatch == MatchNormalized {
		target = Normalize(name)
	}

	kept := make([]Exercise, 0, len(session.Exercises))
	for _, ex := range session.Exercises {
		if ex.Name != target {
			kept = append(kept, ex)
		}
	}

	removed := len(session.Exercises) - len(kept)
	span.SetAttributes(attribute.Int("removed", removed))
	if removed == 0 {
		return session, nil
	}
	if err := e.checkEditable(op, session); err != nil {
		return nil, err
	}

	session.Exercises = kept
	session.RecomputeVolume()

	if err := e.update(ctx, op, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (e *Engine) Delete(ctx context.Context, sessionID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.gymstats.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", sessionID))

	const op = "delete"
	if strings.TrimSpace(sessionID) == "" {
		return newValidationError(op, "sessionId", "required")
	}

	if err := e.store.DeleteByID(ctx, sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return &NotFoundError{Op: op, ID: sessionID}
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Log finishes the session. A session without exercises cannot be logged.
func (e *Engine) Log(ctx context.Context, sessionID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.gymstats.log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", sessionID))

	const op = "log"
	session, err := e.find(ctx, op, sessionID)
	if err != nil {
		return nil, err
	}

	if len(session.Exercises) == 0 {
		return nil, newValidationError(op, "exercises", "empty session")
	}

	session.RecomputeVolume()
	session.State = StateLogged
	loggedAt := e.clock.Now()
	session.LoggedAt = &loggedAt

	if err := e.update(ctx, op, session); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Float64("session_volume", session.TotalVolume()))
	return session, nil
}

func (e *Engine) Get(ctx context.Context, sessionID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.gymstats.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", sessionID))

	return e.find(ctx, "get", sessionID)
}

func (e *Engine) ListByUser(ctx context.Context, userID string) (_ []*Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "engine.gymstats.list-by-user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	const op = "list sessions"
	if strings.TrimSpace(userID) == "" {
		return nil, newValidationError(op, "userId", "required")
	}

	sessions, err := e.store.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Int("count", len(sessions)))
	return sessions, nil
}

func (e *Engine) find(ctx context.Context, op, sessionID string) (*Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, newValidationError(op, "sessionId", "required")
	}

	session, err := e.store.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, &NotFoundError{Op: op, ID: sessionID}
		}
		return nil, fmt.Errorf("%s: find session: %w", op, err)
	}
	return session, nil
}

func (e *Engine) update(ctx context.Context, op string, session *Session) error {
	if err := e.store.Update(ctx, session); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return &NotFoundError{Op: op, ID: session.ID}
		}
		return fmt.Errorf("%s: update session: %w", op, err)
	}
	return nil
}

func (e *Engine) checkEditable(op string, session *Session) error {
	if e.lockLogged && session.IsLogged() {
		return newValidationError(op, "state", "session already logged")
	}
	return nil
}

func validateExercise(op string, in ExerciseInput) error {
	if Normalize(in.Name) == "" {
		return newValidationError(op, "name", "required")
	}
	if in.Sets <= 0 {
		return newValidationError(op, "sets", "must be a positive integer")
	}
	if in.Reps == nil {
		return newValidationError(op, "reps", "required")
	}
	if in.Weights == nil {
		return newValidationError(op, "weights", "required")
	}
	if len(in.Reps) != in.Sets {
		return newValidationError(op, "reps", fmt.Sprintf("expected %d values, got %d", in.Sets, len(in.Reps)))
	}
	for _, r := range in.Reps {
		if r < 0 {
			return newValidationError(op, "reps", "must not be negative")
		}
	}
	if len(in.Weights) != in.Sets {
		return newValidationError(op, "weights", fmt.Sprintf("expected %d values, got %d", in.Sets, len(in.Weights)))
	}
	for _, w := range in.Weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return newValidationError(op, "weights", "must be a non-negative number")
		}
	}
	if math.IsInf(ExerciseVolume(in.Reps, in.Weights), 0) {
		return newValidationError(op, "weights", "volume out of range")
	}
	return nil
}
