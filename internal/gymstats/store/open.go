package store

import (
	"context"
	"fmt"

	"github.com/2beens/gymstats/internal/config"
	"github.com/2beens/gymstats/internal/db"
	"github.com/2beens/gymstats/internal/gymstats/macros"
	"github.com/2beens/gymstats/internal/gymstats/workout"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Backend is the session and macro profile storage selected by config, with the
// connections it owns.
type Backend struct {
	Store    workout.Store
	Profiles macros.Store
	// Pool is set only for the postgres backend.
	Pool *pgxpool.Pool

	mongoClient *mongo.Client
}

type OpenParams struct {
	Config           *config.Config
	PostgresPassword string
	TracingEnabled   bool
}

// Open connects the backend named by Config.StoreBackend. Postgres migrations are
// applied when enabled in config.
func Open(ctx context.Context, params OpenParams) (*Backend, error) {
	cfg := params.Config
	switch cfg.StoreBackend {
	case "memory":
		log.Warnln("using in-memory session store, sessions are lost on restart")
		return &Backend{
			Store:    NewMemoryStore(),
			Profiles: NewMemoryProfileStore(),
		}, nil

	case "postgres":
		poolParams := db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.TracingEnabled,
		}
		if cfg.MigrationsEnabled {
			if err := db.RunMigrations(poolParams.ConnString()); err != nil {
				return nil, err
			}
		}

		pool, err := db.NewDBPool(ctx, poolParams)
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		return &Backend{
			Store:    NewPostgresStore(pool),
			Profiles: NewPostgresProfileStore(pool),
			Pool:     pool,
		}, nil

	case "mongo":
		client, database, err := NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		mongoStore := NewMongoStore(database)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return &Backend{
			Store:       mongoStore,
			Profiles:    NewMongoProfileStore(database),
			mongoClient: client,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}

// Close releases the connections of the backend. The postgres pool close blocks
// until all acquired connections are released.
func (b *Backend) Close(ctx context.Context) error {
	if b.Pool != nil {
		log.Debugln("closing db pool ...")
		b.Pool.Close()
		log.Debugln("db pool closed")
	}
	if b.mongoClient != nil {
		if err := b.mongoClient.Disconnect(ctx); err != nil {
			return fmt.Errorf("disconnect mongo: %w", err)
		}
	}
	return nil
}
