// Package content produces the static description and instruction texts
// stored with every exercise.
package content

import (
	"fmt"
	"strings"
)

var descriptions = map[string]string{
	"Tríceps":     "Exercício para desenvolvimento e fortalecimento da porção posterior do braço",
	"Ombros":      "Exercício para desenvolvimento dos deltoides e estabilização dos ombros",
	"Panturrilha": "Exercício para fortalecimento e desenvolvimento da musculatura da panturrilha",
	"Trapézio":    "Exercício para fortalecimento do trapézio e região cervical",
	"Costas":      "Exercício para fortalecimento dos músculos das costas e melhora da postura",
	"Peito":       "Exercício para desenvolvimento do peitoral maior e menor",
	"Bíceps":      "Exercício para fortalecimento e hipertrofia do bíceps braquial",
	"Glúteos":     "Exercício para ativação e fortalecimento dos músculos glúteos",
	"Abdômen":     "Exercício para fortalecimento do core e músculos abdominais",
	"Pernas":      "Exercício para fortalecimento dos músculos das pernas e quadril",
}

// DefaultDescription is used for muscle groups missing from the table.
const DefaultDescription = "Exercício de fortalecimento muscular"

// Description returns the text for an exact muscle group label.
func Description(muscleGroup string) string {
	if d, ok := descriptions[muscleGroup]; ok {
		return d
	}
	return DefaultDescription
}

type instructionRule struct {
	patterns []string
	steps    [5]string
}

// Checked in order against the slug; the first rule with a matching pattern wins.
var instructionRules = []instructionRule{
	{
		patterns: []string{"agachamento", "squat"},
		steps: [5]string{
			"Posicione os pés na largura dos ombros",
			"Mantenha o peito erguido e core ativado",
			"Desça flexionando quadril e joelhos até 90 graus",
			"Suba empurrando o chão com os pés",
			"Mantenha os joelhos alinhados com os pés",
		},
	},
	{
		patterns: []string{"supino", "press"},
		steps: [5]string{
			"Deite no banco com os pés firmes no chão",
			"Segure o peso com pegada adequada",
			"Mantenha ombros retraídos e core contraído",
			"Desça controladamente até o peito",
			"Empurre o peso para cima mantendo controle",
		},
	},
	{
		patterns: []string{"rosca", "curl"},
		steps: [5]string{
			"Mantenha os cotovelos fixos ao lado do corpo",
			"Segure o peso com pegada firme",
			"Contraia o bíceps para flexionar o braço",
			"Suba até a contração máxima",
			"Desça controladamente sem balançar",
		},
	},
	{
		patterns: []string{"triceps", "extensao-triceps", "testa-francesa"},
		steps: [5]string{
			"Mantenha os cotovelos fixos e estáveis",
			"Estenda completamente os braços",
			"Contraia o tríceps na extensão",
			"Retorne controladamente à posição inicial",
			"Não mova os ombros durante o movimento",
		},
	},
	{
		patterns: []string{"elevacao", "raise"},
		steps: [5]string{
			"Mantenha postura ereta e core ativado",
			"Eleve o peso ou corpo controladamente",
			"Pause brevemente no topo do movimento",
			"Desça controladamente",
			"Não use impulso ou balanço",
		},
	},
	{
		patterns: []string{"remada", "row"},
		steps: [5]string{
			"Mantenha as costas retas e peito para fora",
			"Puxe os cotovelos para trás",
			"Aperte as escápulas no final do movimento",
			"Retorne controladamente à posição inicial",
			"Mantenha o core contraído durante todo exercício",
		},
	},
	{
		patterns: []string{"flexao", "push-up"},
		steps: [5]string{
			"Posicione as mãos na largura dos ombros",
			"Mantenha o corpo alinhado da cabeça aos pés",
			"Desça até o peito quase tocar o chão",
			"Empurre com força para subir",
			"Mantenha o core contraído sem deixar quadril cair",
		},
	},
	{
		patterns: []string{"desenvolvimento", "overhead"},
		steps: [5]string{
			"Mantenha postura ereta com core ativado",
			"Segure o peso na altura dos ombros",
			"Empurre o peso para cima controladamente",
			"Estenda completamente os braços no topo",
			"Desça controladamente até a posição inicial",
		},
	},
	{
		patterns: []string{"encolhimento", "shrug"},
		steps: [5]string{
			"Mantenha braços estendidos ao lado do corpo",
			"Eleve os ombros o máximo possível",
			"Contraia o trapézio no topo",
			"Mantenha a contração por 1-2 segundos",
			"Desça controladamente os ombros",
		},
	},
}

// Instructions returns numbered steps for the movement pattern found in slug,
// or a generic template mentioning the muscle group.
func Instructions(slug, muscleGroup string) string {
	for _, rule := range instructionRules {
		for _, p := range rule.patterns {
			if strings.Contains(slug, p) {
				return numbered(rule.steps)
			}
		}
	}
	return numbered([5]string{
		"Posicione-se corretamente para o exercício",
		"Mantenha boa postura durante todo movimento",
		"Execute o movimento de forma controlada",
		fmt.Sprintf("Contraia o %s durante a execução", strings.ToLower(muscleGroup)),
		"Respire adequadamente: expire no esforço, inspire no relaxamento",
	})
}

func numbered(steps [5]string) string {
	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	return strings.Join(lines, "\n")
}
