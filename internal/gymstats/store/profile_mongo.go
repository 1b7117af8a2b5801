package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymstats/internal/gymstats/macros"
	"github.com/2beens/gymstats/internal/telemetry/tracing"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

const profilesCollection = "macro_profiles"

// profileDoc is keyed by user id, one document per user.
type profileDoc struct {
	UserID        string    `bson:"_id"`
	WeightKg      float64   `bson:"weight"`
	HeightCm      float64   `bson:"height"`
	Age           int       `bson:"age"`
	Gender        string    `bson:"gender"`
	ActivityLevel string    `bson:"activity_level"`
	Goal          string    `bson:"goal"`
	Calories      int       `bson:"calories"`
	Protein       int       `bson:"protein"`
	Carbs         int       `bson:"carbs"`
	Fat           int       `bson:"fat"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func toProfileDoc(r *macros.Record) profileDoc {
	return profileDoc{
		UserID:        r.Profile.UserID,
		WeightKg:      r.Profile.WeightKg,
		HeightCm:      r.Profile.HeightCm,
		Age:           r.Profile.Age,
		Gender:        string(r.Profile.Gender),
		ActivityLevel: string(r.Profile.ActivityLevel),
		Goal:          string(r.Profile.Goal),
		Calories:      r.Targets.Calories,
		Protein:       r.Targets.Protein,
		Carbs:         r.Targets.Carbs,
		Fat:           r.Targets.Fat,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (d profileDoc) toRecord() *macros.Record {
	return &macros.Record{
		Profile: macros.Profile{
			UserID:        d.UserID,
			WeightKg:      d.WeightKg,
			HeightCm:      d.HeightCm,
			Age:           d.Age,
			Gender:        macros.Gender(d.Gender),
			ActivityLevel: macros.ActivityLevel(d.ActivityLevel),
			Goal:          macros.Goal(d.Goal),
		},
		Targets: macros.Targets{
			Calories: d.Calories,
			Protein:  d.Protein,
			Carbs:    d.Carbs,
			Fat:      d.Fat,
		},
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type MongoProfileStore struct {
	collection *mongo.Collection
}

func NewMongoProfileStore(db *mongo.Database) *MongoProfileStore {
	return &MongoProfileStore{
		collection: db.Collection(profilesCollection),
	}
}

func (s *MongoProfileStore) Save(ctx context.Context, record *macros.Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mongo.gymstats.macro-profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", record.Profile.UserID))

	_, err = s.collection.ReplaceOne(
		ctx,
		bson.M{"_id": record.Profile.UserID},
		toProfileDoc(record),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert macro profile: %w", err)
	}
	return nil
}

func (s *MongoProfileStore) FindByUser(ctx context.Context, userID string) (_ *macros.Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mongo.gymstats.macro-profile.find")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	var doc profileDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, macros.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find macro profile: %w", err)
	}
	return doc.toRecord(), nil
}
