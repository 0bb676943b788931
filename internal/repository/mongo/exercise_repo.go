package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/exercise-importer/internal/domain"
	"alcyxob/exercise-importer/internal/repository"
)

// exerciseDocument is the stored shape: the record plus store-managed fields.
type exerciseDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	domain.Exercise `bson:",inline"`
	CreatedAt       time.Time `bson:"created_at"`
}

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database, collectionName string) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(collectionName),
	}
}

// Create inserts a new exercise into the database.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if err := repository.ValidateForInsert(exercise); err != nil {
		return "", err
	}

	doc := exerciseDocument{
		ID:        primitive.NewObjectID(),
		Exercise:  *exercise,
		CreatedAt: time.Now().UTC(),
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicateSlug
		}
		return "", err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("failed to convert inserted ID")
	}

	return insertedID.Hex(), nil
}

// GetBySlug retrieves an exercise by its slug.
func (r *mongoExerciseRepository) GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error) {
	var doc exerciseDocument
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc.Exercise, nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Slugs identify exercises; duplicates are rejected by the store
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("exercise_slug_unique"),
		},
		{
			Keys:    bson.D{{Key: "muscle_group", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
		return err
	}
	return nil
}
