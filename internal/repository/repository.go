package repository

import (
	"context"

	"alcyxob/exercise-importer/internal/domain"
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrDuplicateSlug = RepositoryError("duplicate slug")
	ErrInvalidRecord = RepositoryError("exercise name and slug are required")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseRepository defines the interface for persisting imported exercises.
type ExerciseRepository interface {
	// Create appends the exercise and returns the identifier assigned by the store.
	// A slug already present in the store yields ErrDuplicateSlug.
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error)
}

// ValidateForInsert is the presence check every implementation runs before writing.
func ValidateForInsert(exercise *domain.Exercise) error {
	if exercise == nil || exercise.Name == "" || exercise.Slug == "" {
		return ErrInvalidRecord
	}
	return nil
}
