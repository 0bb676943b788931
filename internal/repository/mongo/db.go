package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"alcyxob/exercise-importer/internal/config"
	"alcyxob/exercise-importer/internal/repository"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// Store owns the client and exposes the exercise repository.
type Store struct {
	client    *mongo.Client
	Exercises repository.ExerciseRepository
}

// Open connects to MongoDB, verifies the connection and prepares the exercise collection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	client, err := ConnectDB(ctx, cfg.URI)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.Name)

	indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := EnsureExerciseIndexes(indexCtx, db.Collection(cfg.Table)); err != nil {
		_ = DisconnectDB(client)
		return nil, err
	}

	return &Store{
		client:    client,
		Exercises: NewMongoExerciseRepository(db, cfg.Table),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close() error {
	return DisconnectDB(s.client)
}

// ConnectDB establishes a connection to MongoDB using the provided URI and pings the primary.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// The connection may succeed while the server is unresponsive.
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = DisconnectDB(client)
		return nil, err
	}

	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}
