// Package catalog resolves the metadata of an exercise from its source filename,
// preferring curated overrides over heuristic classification.
package catalog

import (
	"strings"

	"alcyxob/exercise-importer/internal/classifier"
	"alcyxob/exercise-importer/internal/content"
	"alcyxob/exercise-importer/internal/domain"
	"alcyxob/exercise-importer/internal/textnorm"
)

// overrides is keyed by the exact source filename without its extension.
var overrides = map[string]domain.Override{
	"One-Arm-Pronated-Dumbbell-Triceps": {
		Slug:       "triceps-unilateral-halter",
		Name:       "Tríceps Unilateral com Halter",
		Equipment:  classifier.Dumbbells,
		Type:       domain.DefaultExerciseType,
		Difficulty: classifier.High,
	},
	"tricep dip": {
		Slug:       "mergulho-triceps",
		Name:       "Mergulho para Tríceps",
		Equipment:  classifier.Bodyweight,
		Type:       domain.DefaultExerciseType,
		Difficulty: classifier.Medium,
	},
	"pull up": {
		Slug:       "barra-fixa",
		Name:       "Barra Fixa",
		Equipment:  classifier.Bodyweight,
		Type:       domain.DefaultExerciseType,
		Difficulty: classifier.Medium,
	},
}

// Stem drops the last extension of filename: "tricep dip.png" -> "tricep dip".
func Stem(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[:i]
	}
	return filename
}

// Lookup returns the curated override for an exact filename stem.
func Lookup(stem string) (domain.Override, bool) {
	o, ok := overrides[stem]
	return o, ok
}

// Resolve returns the override for filename when one exists, otherwise
// metadata derived from the name. The boolean reports an override hit.
func Resolve(filename string) (domain.Override, bool) {
	stem := Stem(filename)
	if o, ok := Lookup(stem); ok {
		return o, true
	}

	c := classifier.Classify(stem)
	return domain.Override{
		Slug:       textnorm.Slug(stem),
		Name:       textnorm.TitleCase(stem),
		Equipment:  c.Equipment,
		Type:       domain.DefaultExerciseType,
		Difficulty: c.Difficulty,
	}, false
}

// MuscleGroup turns a source folder name into the muscle group label.
func MuscleGroup(folderName string) string {
	return textnorm.TitleCase(folderName)
}

// ObjectKey is the storage path for an exercise image: "{normalized-folder}/{slug}.{ext}".
func ObjectKey(folderName, slug, ext string) string {
	return textnorm.Normalize(strings.ToLower(folderName)) + "/" + slug + "." + ext
}

// Build assembles the record for one file. Description and instructions are
// always generated, override or not.
func Build(meta domain.Override, folderName, mediaURL string) domain.Exercise {
	muscleGroup := MuscleGroup(folderName)
	return domain.Exercise{
		Name:         meta.Name,
		MuscleGroup:  muscleGroup,
		Equipment:    meta.Equipment,
		ExerciseType: meta.Type,
		Difficulty:   meta.Difficulty,
		Description:  content.Description(muscleGroup),
		Instructions: content.Instructions(meta.Slug, muscleGroup),
		MediaURL:     mediaURL,
		Slug:         meta.Slug,
	}
}
