package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"lumina/internal/dto"
	"lumina/internal/llm"

	"go.uber.org/zap"
)

// ErrBusy is returned when a submit arrives while a previous one is
// still waiting on the classifier.
var ErrBusy = errors.New("a message is already being processed")

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one rendered entry of the conversation transcript. Category
// and Amount are set only on assistant turns that carry a successful
// classification.
type Turn struct {
	ID        int
	Role      Role
	Content   string
	Timestamp time.Time
	Category  string
	Amount    float64
}

// Classifier resolves one free-text description into a structured
// expense classification.
type Classifier interface {
	ClassifyExpense(ctx context.Context, description string) (*dto.ExpenseClassification, error)
}

// ExpenseRecorder persists a classified expense. Recording failures
// never fail the conversation.
type ExpenseRecorder interface {
	RecordExpense(ctx context.Context, amount float64, category, description string, date time.Time) error
}

// Session drives one user's expense-entry conversation: it appends
// the user turn optimistically, calls the classifier, and renders
// either the classification or a friendly error as the reply.
// Sessions are not safe for concurrent use.
type Session struct {
	classifier Classifier
	recorder   ExpenseRecorder
	logger     *zap.Logger

	turns  []Turn
	nextID int
	busy   bool
	now    func() time.Time
}

func NewSession(classifier Classifier, recorder ExpenseRecorder, logger *zap.Logger) *Session {
	return &Session{
		classifier: classifier,
		recorder:   recorder,
		logger:     logger,
		nextID:     1,
		now:        time.Now,
	}
}

// Submit processes one user message. The returned turn is the
// assistant's reply; on classifier failure the reply carries the
// friendly message and the error is also returned.
func (s *Session) Submit(ctx context.Context, message string) (Turn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Turn{}, errors.New("message is empty")
	}
	if s.busy {
		return Turn{}, ErrBusy
	}
	s.busy = true
	defer func() { s.busy = false }()

	s.append(Turn{Role: RoleUser, Content: message})

	classification, err := s.classifier.ClassifyExpense(ctx, message)
	if err != nil {
		reply := s.append(Turn{Role: RoleAssistant, Content: llm.FriendlyMessage(err)})
		return reply, err
	}

	reply := s.append(Turn{
		Role:     RoleAssistant,
		Content:  classification.DisplayText,
		Category: classification.Category,
		Amount:   classification.Amount,
	})

	if classification.Amount > 0 && s.recorder != nil {
		if err := s.recorder.RecordExpense(ctx, classification.Amount, classification.Category, message, s.now()); err != nil {
			s.logger.Warn("Failed to record classified expense", zap.Error(err))
		}
	}

	return reply, nil
}

func (s *Session) append(t Turn) Turn {
	t.ID = s.nextID
	t.Timestamp = s.now()
	s.nextID++
	s.turns = append(s.turns, t)
	return t
}

// Turns returns a copy of the transcript in insertion order.
func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Clear drops the transcript but keeps the ID counter monotonic.
func (s *Session) Clear() {
	s.turns = nil
}
