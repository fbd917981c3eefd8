package service

import (
	"context"
	"errors"
	"testing"

	"lumina/internal/dto"
	"lumina/internal/llm"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGateway struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
	lastOpts   *llm.CompleteOptions
}

func (g *stubGateway) Complete(_ context.Context, prompt string, opts *llm.CompleteOptions) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	g.lastOpts = opts
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func flexAmount(f float64) dto.FlexAmount {
	return dto.FlexAmount{Decimal: decimal.NewFromFloat(f)}
}

func TestClassifyExpense(t *testing.T) {
	gw := &stubGateway{
		reply: `{"texto_chat":"Gasto Classificado ✅, foram gastos R$ 12.50 com 🛒 Mercado","valor":12.5,"categoria":"Mercado","icone":"🛒"}`,
	}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	got, err := svc.ClassifyExpense(context.Background(), "mercado 12,50")
	require.NoError(t, err)

	assert.Equal(t, 12.5, got.Amount)
	assert.Equal(t, "Mercado", got.Category)
	assert.Equal(t, "🛒", got.Icon)
	assert.Contains(t, got.DisplayText, "Gasto Classificado")

	// The primer exchange precedes the classification prompt.
	require.NotNil(t, gw.lastOpts)
	require.Len(t, gw.lastOpts.History, 2)
	assert.Equal(t, llm.RoleUser, gw.lastOpts.History[0].Role)
	assert.Equal(t, llm.RoleAssistant, gw.lastOpts.History[1].Role)
	assert.Contains(t, gw.lastPrompt, `"mercado 12,50"`)
}

func TestClassifyExpenseBackfillsIcon(t *testing.T) {
	gw := &stubGateway{
		reply: `{"texto_chat":"ok","valor":30,"categoria":"Lazer"}`,
	}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	got, err := svc.ClassifyExpense(context.Background(), "cinema 30")
	require.NoError(t, err)
	assert.Equal(t, "🎮", got.Icon)
}

func TestClassifyExpenseZeroAmountIsValid(t *testing.T) {
	gw := &stubGateway{
		reply: `{"texto_chat":"sem valor claro","valor":0,"categoria":"Outros","icone":"📦"}`,
	}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	got, err := svc.ClassifyExpense(context.Background(), "comprei umas coisas")
	require.NoError(t, err)
	assert.Zero(t, got.Amount)
}

func TestClassifyExpenseMissingFields(t *testing.T) {
	gw := &stubGateway{
		reply: `{"texto_chat":"ok","categoria":"Mercado"}`,
	}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	_, err := svc.ClassifyExpense(context.Background(), "mercado")
	require.Error(t, err)

	var lerr *llm.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, llm.KindIncomplete, lerr.Kind)
}

func TestClassifyExpenseNoJSONReply(t *testing.T) {
	gw := &stubGateway{reply: "desculpe, não entendi a sua mensagem"}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	_, err := svc.ClassifyExpense(context.Background(), "mercado")
	require.Error(t, err)
	assert.Equal(t,
		"A IA teve dificuldade em processar sua mensagem. Tente ser mais específico!",
		llm.FriendlyMessage(err))
}

func TestGenerateGoalsTipsNoGoals(t *testing.T) {
	gw := &stubGateway{}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	_, err := svc.GenerateGoalsTips(context.Background(), uuid.New(), "Ana", nil)
	require.Error(t, err)

	var lerr *llm.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, llm.KindNoGoals, lerr.Kind)
	assert.Zero(t, gw.calls, "empty goal list must not reach the gateway")
}

func TestGenerateGoalsTips(t *testing.T) {
	gw := &stubGateway{
		reply: `{"dicas":["dica um 💪","dica dois 🎯","dica três 🏆","dica quatro 📈","dica cinco 🚀"]}`,
	}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	goals := []dto.GoalSnapshot{
		{Title: "Reserva", CurrentAmount: flexAmount(3500), TargetAmount: flexAmount(10000)},
		{Title: "Viagem", CurrentAmount: flexAmount(1200), TargetAmount: flexAmount(4000), Deadline: "2026-12-31"},
	}

	got, err := svc.GenerateGoalsTips(context.Background(), uuid.New(), "Ana", goals)
	require.NoError(t, err)

	assert.Equal(t, []string{"dica um 💪", "dica dois 🎯", "dica três 🏆", "dica quatro 📈", "dica cinco 🚀"}, got.Tips)

	assert.Contains(t, gw.lastPrompt, "Nome do Usuário: Ana")
	assert.Contains(t, gw.lastPrompt, "Total Guardado: R$ 4700.00")
	assert.Contains(t, gw.lastPrompt, "Total em Metas: R$ 14000.00")
	assert.Contains(t, gw.lastPrompt, "Prazo: 2026-12-31")
}

func TestGenerateGoalsTipsDefaultUserName(t *testing.T) {
	gw := &stubGateway{reply: `{"dicas":["uma dica 💡"]}`}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	goals := []dto.GoalSnapshot{
		{Title: "Reserva", CurrentAmount: flexAmount(1), TargetAmount: flexAmount(2)},
	}
	_, err := svc.GenerateGoalsTips(context.Background(), uuid.New(), "", goals)
	require.NoError(t, err)
	assert.Contains(t, gw.lastPrompt, "Nome do Usuário: Usuário")
}

func TestGenerateGoalsTipsEmptyReply(t *testing.T) {
	gw := &stubGateway{reply: `{"dicas":[]}`}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	goals := []dto.GoalSnapshot{
		{Title: "Reserva", CurrentAmount: flexAmount(1), TargetAmount: flexAmount(2)},
	}
	_, err := svc.GenerateGoalsTips(context.Background(), uuid.New(), "Ana", goals)
	require.Error(t, err)

	var lerr *llm.Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, llm.KindIncomplete, lerr.Kind)
}

func TestChat(t *testing.T) {
	gw := &stubGateway{reply: "Olá! Como posso ajudar com suas finanças?"}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	got, err := svc.Chat(context.Background(), "oi", []dto.ChatTurn{
		{Role: "user", Content: "mensagem antiga"},
		{Role: "assistant", Content: "resposta antiga"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Olá! Como posso ajudar com suas finanças?", got)

	require.NotNil(t, gw.lastOpts)
	assert.NotEmpty(t, gw.lastOpts.SystemInstruction)
	require.Len(t, gw.lastOpts.History, 2)
	assert.Equal(t, llm.RoleUser, gw.lastOpts.History[0].Role)
	assert.Equal(t, llm.RoleAssistant, gw.lastOpts.History[1].Role)
}

func TestChatGatewayErrorKeepsKind(t *testing.T) {
	gw := &stubGateway{err: llm.NewError(llm.KindTimeout, errors.New("deadline"))}
	svc := NewAssistantService(gw, nil, zap.NewNop())

	_, err := svc.Chat(context.Background(), "oi", nil)
	require.Error(t, err)
	assert.Equal(t, "A IA está demorando a responder. Tente novamente!", llm.FriendlyMessage(err))
}
