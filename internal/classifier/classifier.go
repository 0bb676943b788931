// Package classifier infers equipment and difficulty from an exercise name.
//
// Both properties are resolved from ordered rule tables: the first rule with a
// keyword contained in the lower-cased name wins, otherwise the fallback label
// is returned. Order matters, e.g. "seated" is a Cable/Machine keyword that is
// only reached when no dumbbell or barbell keyword matched first.
package classifier

import "strings"

// Equipment labels.
const (
	Dumbbells    = "Dumbbells"
	Barbell      = "Barbell"
	CableMachine = "Cable/Machine"
	Kettlebell   = "Kettlebell"
	Band         = "Band"
	Suspension   = "Suspension"
	Bodyweight   = "Bodyweight"
)

// Difficulty labels.
const (
	High   = "High"
	Medium = "Medium"
	Low    = "Low"
)

// Rule maps a label to the keywords that select it.
type Rule struct {
	Label    string
	Keywords []string
}

// Matches reports whether any keyword is a substring of the lower-cased name.
func (r Rule) Matches(lowerName string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowerName, kw) {
			return true
		}
	}
	return false
}

// FirstMatch returns the label of the first rule matching name, or fallback.
func FirstMatch(rules []Rule, name, fallback string) string {
	lower := strings.ToLower(name)
	for _, r := range rules {
		if r.Matches(lower) {
			return r.Label
		}
	}
	return fallback
}

// EquipmentRules is evaluated top to bottom.
var EquipmentRules = []Rule{
	{Label: Dumbbells, Keywords: []string{"dumbbell", "halter", "db-", "dumbell", "haltere"}},
	{Label: Barbell, Keywords: []string{"barbell", "barra", "bb-", "bar-", "olympic"}},
	{Label: CableMachine, Keywords: []string{
		"cable", "cabo", "machine", "maquina", "pulley",
		"lat-pulldown", "seated", "leg-press", "smith",
	}},
	{Label: Kettlebell, Keywords: []string{"kettlebell", "kettle", "kb-"}},
	{Label: Band, Keywords: []string{"band", "elastic", "resistance", "elastico"}},
	{Label: Suspension, Keywords: []string{"trx", "suspension", "suspensao", "strap"}},
	{Label: Bodyweight, Keywords: []string{
		"push-up", "pull-up", "flexao", "dip", "plank",
		"burpee", "mountain", "jump", "squat", "lunge",
		"crunch", "sit-up", "leg-raise", "bodyweight",
	}},
}

// DifficultyRules is evaluated top to bottom.
var DifficultyRules = []Rule{
	{Label: High, Keywords: []string{
		"one-arm", "single-arm", "unilateral", "pistol",
		"archer", "human-flag", "muscle-up", "handstand",
		"one-leg", "single-leg", "advanced", "explosive",
		"plyometric", "jump", "clapping",
	}},
	{Label: Low, Keywords: []string{
		"assisted", "machine", "seated", "supported",
		"incline", "wall", "knee", "modified",
		"beginner", "easy", "basic",
	}},
}

const (
	DefaultEquipment  = Bodyweight
	DefaultDifficulty = Medium
)

// EquipmentLabels and DifficultyLabels are the closed sets Classify can return.
var (
	EquipmentLabels  = []string{Dumbbells, Barbell, CableMachine, Kettlebell, Band, Suspension, Bodyweight}
	DifficultyLabels = []string{High, Medium, Low}
)

// Classification is the outcome of classifying one exercise name.
type Classification struct {
	Equipment  string
	Difficulty string
}

// Equipment resolves the equipment label for name.
func Equipment(name string) string {
	return FirstMatch(EquipmentRules, name, DefaultEquipment)
}

// Difficulty resolves the difficulty label for name.
func Difficulty(name string) string {
	return FirstMatch(DifficultyRules, name, DefaultDifficulty)
}

// Classify never fails: every name gets one equipment and one difficulty label.
func Classify(name string) Classification {
	return Classification{
		Equipment:  Equipment(name),
		Difficulty: Difficulty(name),
	}
}
