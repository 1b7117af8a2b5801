package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymstats/internal/gymstats/workout"
	"github.com/2beens/gymstats/internal/telemetry/tracing"
	"github.com/2beens/gymstats/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// PostgresStore keeps one row per session, exercises are embedded as a JSONB document.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

func (s *PostgresStore) Create(ctx context.Context, session *workout.Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", session.ID))

	exercisesJson, err := json.Marshal(session.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	_, err = s.db.Exec(
		ctx,
		`INSERT INTO workout_session
				(id, user_id, label, date, state, exercises, created_at, logged_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		session.ID, session.UserID, session.Label, session.Date, string(session.State),
		exercisesJson, session.CreatedAt, session.LoggedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return fmt.Errorf("insert session: id [%s] already taken: %w", session.ID, err)
		}
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (_ *workout.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.sessions.find")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", id))

	rows, err := s.db.Query(
		ctx,
		`SELECT id, user_id, label, date, state, exercises, created_at, logged_at
			FROM workout_session
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions, err := s.rows2sessions(rows)
	if err != nil {
		return nil, err
	}

	if len(sessions) != 1 {
		return nil, workout.ErrSessionNotFound
	}

	return sessions[0], nil
}

func (s *PostgresStore) FindAllByUser(ctx context.Context, userID string) (_ []*workout.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.sessions.find-by-user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := s.db.Query(
		ctx,
		`SELECT id, user_id, label, date, state, exercises, created_at, logged_at
			FROM workout_session
			WHERE user_id = $1
			ORDER BY date, created_at;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions, err := s.rows2sessions(rows)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(sessions)))
	return sessions, nil
}

func (s *PostgresStore) Update(ctx context.Context, session *workout.Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.sessions.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", session.ID))

	exercisesJson, err := json.Marshal(session.Exercises)
	if err != nil {
		return fmt.Errorf("marshal exercises: %w", err)
	}

	tag, err := s.db.Exec(
		ctx,
		`UPDATE workout_session
			SET user_id = $1, label = $2, date = $3, state = $4, exercises = $5, logged_at = $6
			WHERE id = $7;`,
		session.UserID, session.Label, session.Date, string(session.State),
		exercisesJson, session.LoggedAt, session.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return workout.ErrSessionNotFound
	}

	return nil
}

func (s *PostgresStore) DeleteByID(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", id))

	tag, err := s.db.Exec(
		ctx,
		`DELETE FROM workout_session WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return workout.ErrSessionNotFound
	}
	return nil
}

func (s *PostgresStore) rows2sessions(rows pgx.Rows) ([]*workout.Session, error) {
	var sessions []*workout.Session
	for rows.Next() {
		var (
			session       workout.Session
			state         string
			exercisesJson []byte
			loggedAt      *time.Time
		)
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.Label,
			&session.Date,
			&state,
			&exercisesJson,
			&session.CreatedAt,
			&loggedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		if err := json.Unmarshal(exercisesJson, &session.Exercises); err != nil {
			return nil, fmt.Errorf("unmarshal exercises of session [%s]: %w", session.ID, err)
		}
		if session.Exercises == nil {
			session.Exercises = make([]workout.Exercise, 0)
		}

		session.State = workout.State(state)
		if !session.State.IsValid() {
			return nil, fmt.Errorf("session [%s] has unknown state: %s", session.ID, state)
		}
		session.LoggedAt = utcTime(loggedAt)
		session.Date = session.Date.UTC()
		session.CreatedAt = session.CreatedAt.UTC()
		session.RecomputeVolume()

		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, workout.ErrSessionNotFound
		}
		return nil, err
	}

	return sessions, nil
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
