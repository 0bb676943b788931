// internal/domain/exercise.go
package domain

// Exercise is the record written to the exercise library for every imported media file.
// Field names match the columns of the target table.
type Exercise struct {
	Name         string `bson:"name" json:"name"`
	MuscleGroup  string `bson:"muscle_group" json:"muscle_group"` // Title-cased source folder name
	Equipment    string `bson:"equipment" json:"equipment"`       // e.g., "Dumbbells", "Cable/Machine"
	ExerciseType string `bson:"exercise_type" json:"exercise_type"`
	Difficulty   string `bson:"difficulty" json:"difficulty"` // "Low", "Medium" or "High"
	Description  string `bson:"description" json:"description"`
	Instructions string `bson:"instructions" json:"instructions"` // Five numbered steps, newline separated
	MediaURL     string `bson:"media_url" json:"media_url"`
	Slug         string `bson:"slug" json:"slug"`
}

// DefaultExerciseType is the type given to every exercise imported from the shared library.
const DefaultExerciseType = "padrao"

// Override is a curated metadata fragment that replaces heuristic classification
// for one specific source file.
type Override struct {
	Slug       string
	Name       string
	Equipment  string
	Type       string
	Difficulty string
}
