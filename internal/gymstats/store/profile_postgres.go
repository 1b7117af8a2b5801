package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/gymstats/internal/gymstats/macros"
	"github.com/2beens/gymstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// PostgresProfileStore keeps one macro_profile row per user.
type PostgresProfileStore struct {
	db *pgxpool.Pool
}

func NewPostgresProfileStore(db *pgxpool.Pool) *PostgresProfileStore {
	return &PostgresProfileStore{
		db: db,
	}
}

func (s *PostgresProfileStore) Save(ctx context.Context, record *macros.Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.macro-profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", record.Profile.UserID))

	p, t := record.Profile, record.Targets
	_, err = s.db.Exec(
		ctx,
		`INSERT INTO macro_profile
				(user_id, weight, height, age, gender, activity_level, goal, calories, protein, carbs, fat, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (user_id) DO UPDATE SET
				weight = EXCLUDED.weight, height = EXCLUDED.height, age = EXCLUDED.age,
				gender = EXCLUDED.gender, activity_level = EXCLUDED.activity_level, goal = EXCLUDED.goal,
				calories = EXCLUDED.calories, protein = EXCLUDED.protein, carbs = EXCLUDED.carbs,
				fat = EXCLUDED.fat, updated_at = EXCLUDED.updated_at;`,
		p.UserID, p.WeightKg, p.HeightCm, p.Age, string(p.Gender), string(p.ActivityLevel), string(p.Goal),
		t.Calories, t.Protein, t.Carbs, t.Fat, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert macro profile: %w", err)
	}
	return nil
}

func (s *PostgresProfileStore) FindByUser(ctx context.Context, userID string) (_ *macros.Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.macro-profile.find")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	var (
		record                      macros.Record
		gender, activityLevel, goal string
	)
	err = s.db.QueryRow(
		ctx,
		`SELECT user_id, weight, height, age, gender, activity_level, goal, calories, protein, carbs, fat, updated_at
			FROM macro_profile
			WHERE user_id = $1;`,
		userID,
	).Scan(
		&record.Profile.UserID,
		&record.Profile.WeightKg,
		&record.Profile.HeightCm,
		&record.Profile.Age,
		&gender,
		&activityLevel,
		&goal,
		&record.Targets.Calories,
		&record.Targets.Protein,
		&record.Targets.Carbs,
		&record.Targets.Fat,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, macros.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find macro profile: %w", err)
	}

	record.Profile.Gender = macros.Gender(gender)
	record.Profile.ActivityLevel = macros.ActivityLevel(activityLevel)
	record.Profile.Goal = macros.Goal(goal)
	record.UpdatedAt = record.UpdatedAt.UTC()
	return &record, nil
}
