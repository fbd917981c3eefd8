package service

import (
	"context"
	"testing"
	"time"

	"lumina/internal/chat"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var _ chat.ExpenseRecorder = (*ExpenseRecorder)(nil)

// The assistant service and a user-bound recorder compose into a chat
// session; a classification without a clear amount flows through the
// whole pipeline without touching persistence.
func TestChatSessionWithBoundRecorder(t *testing.T) {
	gw := &stubGateway{
		reply: `{"texto_chat":"sem valor claro","valor":0,"categoria":"Outros","icone":"📦"}`,
	}
	assistant := NewAssistantService(gw, nil, zap.NewNop())
	expenses := NewExpenseService(nil, zap.NewNop())

	session := chat.NewSession(assistant, expenses.RecorderFor(uuid.New()), zap.NewNop())

	reply, err := session.Submit(context.Background(), "comprei umas coisas")
	require.NoError(t, err)

	assert.Equal(t, chat.RoleAssistant, reply.Role)
	assert.Equal(t, "Outros", reply.Category)
	assert.Zero(t, reply.Amount)
	assert.Len(t, session.Turns(), 2)
	assert.Equal(t, 1, gw.calls)
}

func TestRecorderForValidatesAmount(t *testing.T) {
	expenses := NewExpenseService(nil, zap.NewNop())
	recorder := expenses.RecorderFor(uuid.New())

	err := recorder.RecordExpense(context.Background(), -5, "Mercado", "mercado", time.Now())
	assert.ErrorIs(t, err, ErrInvalidExpense)
}
