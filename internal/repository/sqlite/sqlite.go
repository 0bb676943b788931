// Package sqlite stores imported exercises in a relational table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"alcyxob/exercise-importer/internal/domain"
	"alcyxob/exercise-importer/internal/repository"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DB wraps the connection and the table the importer writes to.
type DB struct {
	*sql.DB
	table string
}

// Open opens or creates the database at path and creates the table if needed.
func Open(ctx context.Context, path, table string) (*DB, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{DB: sqlDB, table: table}
	if err := db.ensureSchema(ctx); err != nil {
		_ = sqlDB.Close() // Close error less important than schema error
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

func (db *DB) ensureSchema(ctx context.Context) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT NOT NULL,
	muscle_group  TEXT NOT NULL,
	equipment     TEXT NOT NULL,
	exercise_type TEXT NOT NULL,
	difficulty    TEXT NOT NULL,
	description   TEXT NOT NULL,
	instructions  TEXT NOT NULL,
	media_url     TEXT NOT NULL,
	slug          TEXT NOT NULL UNIQUE,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, db.table))
	return err
}

// Exercises returns the repository over the configured table.
func (db *DB) Exercises() repository.ExerciseRepository {
	return &exerciseRepository{db: db.DB, table: db.table}
}

type exerciseRepository struct {
	db    *sql.DB
	table string
}

func (r *exerciseRepository) Create(ctx context.Context, ex *domain.Exercise) (string, error) {
	if err := repository.ValidateForInsert(ex); err != nil {
		return "", err
	}

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`
INSERT INTO %s (name, muscle_group, equipment, exercise_type, difficulty, description, instructions, media_url, slug)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, r.table),
		ex.Name, ex.MuscleGroup, ex.Equipment, ex.ExerciseType, ex.Difficulty,
		ex.Description, ex.Instructions, ex.MediaURL, ex.Slug)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", repository.ErrDuplicateSlug
		}
		return "", err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

func (r *exerciseRepository) GetBySlug(ctx context.Context, slug string) (*domain.Exercise, error) {
	var ex domain.Exercise
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`
SELECT name, muscle_group, equipment, exercise_type, difficulty, description, instructions, media_url, slug
FROM %s WHERE slug = ?`, r.table), slug).Scan(
		&ex.Name, &ex.MuscleGroup, &ex.Equipment, &ex.ExerciseType, &ex.Difficulty,
		&ex.Description, &ex.Instructions, &ex.MediaURL, &ex.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &ex, nil
}
