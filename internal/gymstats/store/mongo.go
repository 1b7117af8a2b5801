package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/gymstats/internal/gymstats/workout"
	"github.com/2beens/gymstats/internal/telemetry/tracing"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.opentelemetry.io/otel/attribute"
)

const sessionsCollection = "workout_sessions"

type exerciseDoc struct {
	Name    string    `bson:"name"`
	Sets    int       `bson:"sets"`
	Reps    []int     `bson:"reps"`
	Weights []float64 `bson:"weights"`
}

type sessionDoc struct {
	ID        string        `bson:"_id"`
	UserID    string        `bson:"user_id"`
	Label     string        `bson:"label,omitempty"`
	Date      time.Time     `bson:"date"`
	State     string        `bson:"state"`
	Exercises []exerciseDoc `bson:"exercises"`
	CreatedAt time.Time     `bson:"created_at"`
	LoggedAt  *time.Time    `bson:"logged_at,omitempty"`
	// informational only, never read back
	TotalVolume float64 `bson:"total_volume"`
}

func toSessionDoc(s *workout.Session) sessionDoc {
	doc := sessionDoc{
		ID:          s.ID,
		UserID:      s.UserID,
		Label:       s.Label,
		Date:        s.Date,
		State:       string(s.State),
		Exercises:   make([]exerciseDoc, 0, len(s.Exercises)),
		CreatedAt:   s.CreatedAt,
		LoggedAt:    s.LoggedAt,
		TotalVolume: s.TotalVolume(),
	}
	for _, e := range s.Exercises {
		doc.Exercises = append(doc.Exercises, exerciseDoc{
			Name:    e.Name,
			Sets:    e.Sets,
			Reps:    e.Reps,
			Weights: e.Weights,
		})
	}
	return doc
}

func (d sessionDoc) toSession() (*workout.Session, error) {
	state := workout.State(d.State)
	if !state.IsValid() {
		return nil, fmt.Errorf("session [%s] has unknown state: %s", d.ID, d.State)
	}

	s := &workout.Session{
		ID:        d.ID,
		UserID:    d.UserID,
		Label:     d.Label,
		Date:      d.Date.UTC(),
		State:     state,
		Exercises: make([]workout.Exercise, 0, len(d.Exercises)),
		CreatedAt: d.CreatedAt.UTC(),
		LoggedAt:  utcTime(d.LoggedAt),
	}
	for _, e := range d.Exercises {
		s.Exercises = append(s.Exercises, workout.NewExercise(e.Name, e.Sets, e.Reps, e.Weights))
	}
	s.RecomputeVolume()

	return s, nil
}

// MongoStore keeps sessions as native documents, one per session.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection(sessionsCollection),
	}
}

// EnsureIndexes creates the (user_id, date) index used by FindAllByUser.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "date", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create sessions index: %w", err)
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, session *workout.Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mongo.gymstats.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", session.ID))

	if _, err := s.collection.InsertOne(ctx, toSessionDoc(session)); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (_ *workout.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mongo.gymstats.sessions.find")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", id))

	var doc sessionDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, workout.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return doc.toSession()
}

func (s *MongoStore) FindAllByUser(ctx context.Context, userID string) (_ []*workout.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mongo.gymstats.sessions.find-by-user")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	cursor, err := s.collection.Find(
		ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{
			{Key: "date", Value: 1},
			{Key: "created_at", Value: 1},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}

	var docs []sessionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	sessions := make([]*workout.Session, 0, len(docs))
	for _, doc := range docs {
		session, err := doc.toSession()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	span.SetAttributes(attribute.Int("count", len(sessions)))
	return sessions, nil
}

func (s *MongoStore) Update(ctx context.Context, session *workout.Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mongo.gymstats.sessions.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", session.ID))

	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": session.ID}, toSessionDoc(session))
	if err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	if res.MatchedCount == 0 {
		return workout.ErrSessionNotFound
	}
	return nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "mongo.gymstats.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", id))

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return workout.ErrSessionNotFound
	}
	return nil
}

// NewMongoDatabase connects to uri and pings the server before returning the database.
func NewMongoDatabase(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client, client.Database(dbName), nil
}
