package llm

import (
	"strings"
	"testing"

	"lumina/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExpensePrompt(t *testing.T) {
	prompt := BuildExpensePrompt("gastei 50 reais no mercado")

	assert.Contains(t, prompt, `Gasto do usuário: "gastei 50 reais no mercado"`)
	assert.True(t, strings.HasPrefix(prompt, "Você é o motor de inteligência da Lumina"))

	for _, category := range models.Categories {
		assert.Contains(t, prompt, string(category), "category missing from template")
		assert.Contains(t, prompt, category.Emoji(), "emoji missing from template")
	}
}

func TestBuildExpensePromptIsDeterministic(t *testing.T) {
	first := BuildExpensePrompt("cinema 30")
	second := BuildExpensePrompt("cinema 30")
	assert.Equal(t, first, second)
}

func TestFormatGoalLine(t *testing.T) {
	tests := []struct {
		name string
		goal GoalSnapshot
		want string
	}{
		{
			name: "with deadline",
			goal: GoalSnapshot{
				Title:    "Viagem",
				Current:  decimal.NewFromFloat(1200),
				Target:   decimal.NewFromFloat(4000),
				Deadline: "2026-12-31",
			},
			want: "- Viagem: R$ 1200.00 de R$ 4000.00 (30.0% concluído) - Prazo: 2026-12-31",
		},
		{
			name: "without deadline",
			goal: GoalSnapshot{
				Title:   "Reserva",
				Current: decimal.NewFromFloat(3500),
				Target:  decimal.NewFromFloat(10000),
			},
			want: "- Reserva: R$ 3500.00 de R$ 10000.00 (35.0% concluído)",
		},
		{
			name: "zero target does not divide",
			goal: GoalSnapshot{
				Title:   "Sem alvo",
				Current: decimal.NewFromFloat(10),
				Target:  decimal.Zero,
			},
			want: "- Sem alvo: R$ 10.00 de R$ 0.00 (0.0% concluído)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatGoalLine(tt.goal))
		})
	}
}

func TestBuildGoalsTipsPrompt(t *testing.T) {
	lines := []string{
		"- Reserva: R$ 3500.00 de R$ 10000.00 (35.0% concluído)",
		"- Viagem: R$ 1200.00 de R$ 4000.00 (30.0% concluído)",
	}
	prompt := BuildGoalsTipsPrompt("Ana", decimal.NewFromFloat(4700), decimal.NewFromFloat(14000), lines)

	assert.Contains(t, prompt, "Nome do Usuário: Ana")
	assert.Contains(t, prompt, "Total Guardado: R$ 4700.00")
	assert.Contains(t, prompt, "Total em Metas: R$ 14000.00")

	// Goal lines keep their input order.
	first := strings.Index(prompt, "Reserva")
	second := strings.Index(prompt, "Viagem")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)
}
