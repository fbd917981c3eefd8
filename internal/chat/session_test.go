package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"lumina/internal/dto"
	"lumina/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClassifier struct {
	result *dto.ExpenseClassification
	err    error
	calls  int
}

func (c *stubClassifier) ClassifyExpense(context.Context, string) (*dto.ExpenseClassification, error) {
	c.calls++
	return c.result, c.err
}

type recordedExpense struct {
	amount      float64
	category    string
	description string
	date        time.Time
}

type stubRecorder struct {
	records []recordedExpense
	err     error
}

func (r *stubRecorder) RecordExpense(_ context.Context, amount float64, category, description string, date time.Time) error {
	r.records = append(r.records, recordedExpense{amount, category, description, date})
	return r.err
}

func TestSubmitSuccess(t *testing.T) {
	classifier := &stubClassifier{
		result: &dto.ExpenseClassification{
			DisplayText: "Gasto Classificado ✅, foram gastos R$ 50.00 com 🛒 Mercado",
			Amount:      50,
			Category:    "Mercado",
			Icon:        "🛒",
		},
	}
	recorder := &stubRecorder{}
	session := NewSession(classifier, recorder, zap.NewNop())

	fixed := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	session.now = func() time.Time { return fixed }

	reply, err := session.Submit(context.Background(), "  mercado 50  ")
	require.NoError(t, err)

	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, "Mercado", reply.Category)
	assert.Equal(t, 50.0, reply.Amount)

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, "mercado 50", turns[0].Content, "user content is trimmed")
	assert.Equal(t, 1, turns[0].ID)
	assert.Equal(t, 2, turns[1].ID)

	require.Len(t, recorder.records, 1)
	assert.Equal(t, 50.0, recorder.records[0].amount)
	assert.Equal(t, "Mercado", recorder.records[0].category)
	assert.Equal(t, "mercado 50", recorder.records[0].description)
	assert.Equal(t, fixed, recorder.records[0].date)
}

func TestSubmitClassifierError(t *testing.T) {
	classifier := &stubClassifier{err: llm.NewError(llm.KindTimeout, errors.New("deadline"))}
	recorder := &stubRecorder{}
	session := NewSession(classifier, recorder, zap.NewNop())

	reply, err := session.Submit(context.Background(), "mercado 50")
	require.Error(t, err)

	assert.Equal(t, RoleAssistant, reply.Role)
	assert.Equal(t, "A IA está demorando a responder. Tente novamente!", reply.Content)

	turns := session.Turns()
	require.Len(t, turns, 2, "user turn stays even when classification fails")
	assert.Empty(t, recorder.records)
}

func TestSubmitZeroAmountNotRecorded(t *testing.T) {
	classifier := &stubClassifier{
		result: &dto.ExpenseClassification{
			DisplayText: "sem valor claro",
			Amount:      0,
			Category:    "Outros",
			Icon:        "📦",
		},
	}
	recorder := &stubRecorder{}
	session := NewSession(classifier, recorder, zap.NewNop())

	_, err := session.Submit(context.Background(), "comprei umas coisas")
	require.NoError(t, err)
	assert.Empty(t, recorder.records)
}

func TestSubmitRecorderFailureDoesNotFailTurn(t *testing.T) {
	classifier := &stubClassifier{
		result: &dto.ExpenseClassification{DisplayText: "ok", Amount: 10, Category: "Lazer", Icon: "🎮"},
	}
	recorder := &stubRecorder{err: errors.New("db down")}
	session := NewSession(classifier, recorder, zap.NewNop())

	reply, err := session.Submit(context.Background(), "cinema 10")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Content)
}

func TestSubmitEmptyMessage(t *testing.T) {
	classifier := &stubClassifier{}
	session := NewSession(classifier, nil, zap.NewNop())

	_, err := session.Submit(context.Background(), "   ")
	require.Error(t, err)
	assert.Zero(t, classifier.calls)
	assert.Empty(t, session.Turns())
}

func TestSubmitWhileBusy(t *testing.T) {
	classifier := &stubClassifier{}
	session := NewSession(classifier, nil, zap.NewNop())
	session.busy = true

	_, err := session.Submit(context.Background(), "mercado 50")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Zero(t, classifier.calls)
}

func TestClearKeepsIDsMonotonic(t *testing.T) {
	classifier := &stubClassifier{
		result: &dto.ExpenseClassification{DisplayText: "ok", Amount: 10, Category: "Lazer", Icon: "🎮"},
	}
	session := NewSession(classifier, nil, zap.NewNop())

	_, err := session.Submit(context.Background(), "cinema 10")
	require.NoError(t, err)

	session.Clear()
	assert.Empty(t, session.Turns())

	_, err = session.Submit(context.Background(), "teatro 20")
	require.NoError(t, err)

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, 3, turns[0].ID, "IDs keep counting after Clear")
}
