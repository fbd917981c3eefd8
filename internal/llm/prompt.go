package llm

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// expensePromptTemplate instructs the model to classify one expense
// phrase into the closed category set and answer with a single JSON
// object.
const expensePromptTemplate = `Você é o motor de inteligência da Lumina. Sua função é processar frases de gastos.

Regras de Classificação: Use apenas estas categorias: [Mercado, Alimentação, Transporte, Moradia, Lazer, Saúde, Educação, Vestuário, Serviços, Investimentos, Outros].

Formato de Saída (Obrigatório): Retorne apenas um JSON com este formato:
{
  "texto_chat": "Gasto Classificado ✅, foram gastos R$ [VALOR] com [ICONE] [CATEGORIA]",
  "valor": 0.00,
  "categoria": "Nome da Categoria",
  "icone": "Emoji correspondente"
}

Categorias e Emojis:
- Mercado: 🛒
- Alimentação: 🍽️
- Transporte: 🚗
- Moradia: 🏠
- Lazer: 🎮
- Saúde: 🏥
- Educação: 📚
- Vestuário: 👕
- Serviços: 🔧
- Investimentos: 💰
- Outros: 📦

Se o valor não estiver claro, extraia o máximo possível da descrição.`

// goalsTipsPromptTemplate instructs the model to produce exactly five
// short motivational tips as a JSON object.
const goalsTipsPromptTemplate = `Você é o motor de insights da Lumina. Sua função é analisar o progresso financeiro do usuário e fornecer dicas curtas e motivacionais.

Diretrizes para as Dicas:

1. Analise qual meta está mais próxima de ser concluída e dê um incentivo extra para ela.
2. Se houver uma meta com prazo próximo e pouco progresso, faça um alerta amigável.
3. Caso o usuário tenha um bom valor total guardado, elogie a disciplina.
4. Considere oportunidades de economia em categorias de gastos.
5. Reforce a importância de manter o foco nas metas.

Restrições:
- Cada dica deve ter no máximo 100 caracteres
- Cada dica deve conter emojis
- Retorne exatamente 5 dicas motivacionais

Formato de Saída (Obrigatório): Retorne apenas um JSON com este formato:
{
  "dicas": [
    "Dica 1 com emoji (máx 100 caracteres)",
    "Dica 2 com emoji (máx 100 caracteres)",
    "Dica 3 com emoji (máx 100 caracteres)",
    "Dica 4 com emoji (máx 100 caracteres)",
    "Dica 5 com emoji (máx 100 caracteres)"
  ]
}`

// GoalSnapshot is a read-only view of one savings goal, already
// normalized to decimal amounts by the caller.
type GoalSnapshot struct {
	Title    string
	Current  decimal.Decimal
	Target   decimal.Decimal
	Deadline string
}

// BuildExpensePrompt appends the literal user description to the fixed
// classification template. Pure function, no I/O.
func BuildExpensePrompt(description string) string {
	return fmt.Sprintf("%s\n\nGasto do usuário: %q", expensePromptTemplate, description)
}

// FormatGoalLine renders one goal as a prompt line with a completion
// percentage to one decimal place. A zero target reports 0.0% instead
// of dividing by zero.
func FormatGoalLine(g GoalSnapshot) string {
	percentage := "0.0"
	if g.Target.IsPositive() {
		percentage = g.Current.Mul(decimal.NewFromInt(100)).Div(g.Target).StringFixed(1)
	}

	line := fmt.Sprintf("- %s: R$ %s de R$ %s (%s%% concluído)",
		g.Title, g.Current.StringFixed(2), g.Target.StringFixed(2), percentage)
	if g.Deadline != "" {
		line += " - Prazo: " + g.Deadline
	}
	return line
}

// BuildGoalsTipsPrompt combines the fixed tips template with the
// user's name, money totals formatted to two decimals and the
// pre-rendered goal lines, preserving their order.
func BuildGoalsTipsPrompt(userName string, totalSaved, totalTarget decimal.Decimal, goalLines []string) string {
	var b strings.Builder
	b.WriteString(goalsTipsPromptTemplate)
	b.WriteString("\n\nMetas do usuário:\n")
	fmt.Fprintf(&b, "Nome do Usuário: %s\n", userName)
	fmt.Fprintf(&b, "Total Guardado: R$ %s\n", totalSaved.StringFixed(2))
	fmt.Fprintf(&b, "Total em Metas: R$ %s\n", totalTarget.StringFixed(2))
	b.WriteString("\nLista de Metas Atuais:\n")
	b.WriteString(strings.Join(goalLines, "\n"))
	return b.String()
}
