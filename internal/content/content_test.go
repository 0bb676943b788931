package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescription(t *testing.T) {
	assert.Equal(t, "Exercício para desenvolvimento do peitoral maior e menor", Description("Peito"))
	assert.Equal(t, DefaultDescription, Description("Triceps"), "lookup is exact, accents included")
	assert.Equal(t, DefaultDescription, Description(""))
}

func TestInstructions_Patterns(t *testing.T) {
	tests := []struct {
		slug      string
		firstStep string
	}{
		{"agachamento-livre", "1. Posicione os pés na largura dos ombros"},
		{"incline-dumbbell-press", "1. Deite no banco com os pés firmes no chão"},
		{"barbell-curl", "1. Mantenha os cotovelos fixos ao lado do corpo"},
		{"triceps-unilateral-halter", "1. Mantenha os cotovelos fixos e estáveis"},
		{"lateral-raise", "1. Mantenha postura ereta e core ativado"},
		{"bent-over-row", "1. Mantenha as costas retas e peito para fora"},
		{"push-up", "1. Posicione as mãos na largura dos ombros"},
		{"desenvolvimento-militar", "1. Mantenha postura ereta com core ativado"},
		{"barbell-shrug", "1. Mantenha braços estendidos ao lado do corpo"},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			got := Instructions(tt.slug, "Peito")
			assert.True(t, strings.HasPrefix(got, tt.firstStep), got)
			assert.Len(t, strings.Split(got, "\n"), 5)
		})
	}
}

func TestInstructions_PriorityOrder(t *testing.T) {
	// "squat" is checked before "press".
	assert.Equal(t, Instructions("agachamento", ""), Instructions("squat-press", ""))
	// "press" is checked before "overhead".
	assert.Equal(t, Instructions("supino", ""), Instructions("overhead-press", ""))
}

func TestInstructions_Generic(t *testing.T) {
	got := Instructions("mergulho-triceps-banco", "Tríceps")
	assert.Contains(t, got, "1. Mantenha os cotovelos fixos e estáveis")

	got = Instructions("barra-fixa", "Costas")
	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "4. Contraia o costas durante a execução", lines[3])
}
