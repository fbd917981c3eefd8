package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"lumina/internal/cache"
	"lumina/internal/dto"
	"lumina/internal/llm"
	"lumina/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Two-turn priming exchange that establishes the assistant's role
// before the classification prompt is sent.
const (
	classifierPrimerUser      = "Você é um assistente que classifica gastos."
	classifierPrimerAssistant = "Entendido! Estou pronto para classificar seus gastos."
)

const chatSystemInstruction = `Você é Lumina, um assistente financeiro amigável e prestativo.
Você ajuda usuários a gerenciar suas finanças, classificar gastos, alcançar metas e tomar decisões financeiras inteligentes.
Sempre seja educado, motivador e prático nas suas respostas.
Se algo não está relacionado a finanças, redirecione a conversa de forma amigável.`

const defaultUserName = "Usuário"

// classificationReply is the JSON contract requested from the model
// for expense classification. Amount is a pointer so an explicit zero
// can be told apart from an absent field.
type classificationReply struct {
	DisplayText string   `json:"texto_chat"`
	Amount      *float64 `json:"valor"`
	Category    string   `json:"categoria"`
	Icon        string   `json:"icone"`
}

type tipsReply struct {
	Tips []string `json:"dicas"`
}

// AssistantService orchestrates prompt building, the model gateway
// call and reply normalization for classification, tips and chat. It
// owns no persistent state.
type AssistantService struct {
	gateway llm.Gateway
	tips    *cache.TipsCache // nil disables caching
	logger  *zap.Logger
}

func NewAssistantService(gateway llm.Gateway, tips *cache.TipsCache, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		gateway: gateway,
		tips:    tips,
		logger:  logger,
	}
}

// ClassifyExpense turns one free-text expense description into a
// structured classification. The caller validates non-emptiness at
// the boundary.
func (s *AssistantService) ClassifyExpense(ctx context.Context, description string) (*dto.ExpenseClassification, error) {
	prompt := llm.BuildExpensePrompt(description)

	raw, err := s.gateway.Complete(ctx, prompt, &llm.CompleteOptions{
		History: []llm.Turn{
			{Role: llm.RoleUser, Content: classifierPrimerUser},
			{Role: llm.RoleAssistant, Content: classifierPrimerAssistant},
		},
	})
	if err != nil {
		return nil, s.fail("classify_expense", err)
	}

	var reply classificationReply
	if err := llm.ExtractJSON(raw, &reply); err != nil {
		return nil, s.fail("classify_expense", err)
	}

	if reply.DisplayText == "" || reply.Amount == nil || reply.Category == "" {
		return nil, s.fail("classify_expense",
			llm.NewError(llm.KindIncomplete, errors.New("model reply is missing required fields")))
	}

	icon := reply.Icon
	if icon == "" {
		icon = models.CategoryEmoji(reply.Category)
	}

	return &dto.ExpenseClassification{
		DisplayText: sanitizeUTF8(reply.DisplayText),
		Amount:      *reply.Amount,
		Category:    reply.Category,
		Icon:        icon,
	}, nil
}

// GenerateGoalsTips produces short motivational tips for a non-empty
// list of goal snapshots. An empty list fails locally without ever
// reaching the gateway.
func (s *AssistantService) GenerateGoalsTips(ctx context.Context, userID uuid.UUID, userName string, goals []dto.GoalSnapshot) (*dto.GoalsTips, error) {
	if len(goals) == 0 {
		return nil, s.fail("goals_tips",
			llm.NewError(llm.KindNoGoals, errors.New("no goals supplied")))
	}

	if userName == "" {
		userName = defaultUserName
	}

	totalSaved := decimal.Zero
	totalTarget := decimal.Zero
	goalLines := make([]string, 0, len(goals))
	for _, g := range goals {
		totalSaved = totalSaved.Add(g.CurrentAmount.Decimal)
		totalTarget = totalTarget.Add(g.TargetAmount.Decimal)
		goalLines = append(goalLines, llm.FormatGoalLine(llm.GoalSnapshot{
			Title:    g.Title,
			Current:  g.CurrentAmount.Decimal,
			Target:   g.TargetAmount.Decimal,
			Deadline: g.Deadline,
		}))
	}

	fingerprint := tipsFingerprint(userName, goalLines)
	if s.tips != nil {
		if tips, ok := s.tips.Get(ctx, userID.String(), fingerprint); ok {
			s.logger.Debug("Tips served from cache", zap.String("user_id", userID.String()))
			return &dto.GoalsTips{Tips: tips}, nil
		}
	}

	prompt := llm.BuildGoalsTipsPrompt(userName, totalSaved, totalTarget, goalLines)

	raw, err := s.gateway.Complete(ctx, prompt, nil)
	if err != nil {
		return nil, s.fail("goals_tips", err)
	}

	var reply tipsReply
	if err := llm.ExtractJSON(raw, &reply); err != nil {
		return nil, s.fail("goals_tips", err)
	}

	if len(reply.Tips) == 0 {
		return nil, s.fail("goals_tips",
			llm.NewError(llm.KindIncomplete, errors.New("model reply has no tips array")))
	}

	tips := make([]string, 0, len(reply.Tips))
	for _, tip := range reply.Tips {
		tips = append(tips, sanitizeUTF8(tip))
	}

	if s.tips != nil {
		s.tips.Set(ctx, userID.String(), fingerprint, tips)
	}

	return &dto.GoalsTips{Tips: tips}, nil
}

// Chat relays one conversational message with optional prior history,
// preserving the supplied ordering.
func (s *AssistantService) Chat(ctx context.Context, message string, history []dto.ChatTurn) (string, error) {
	turns := make([]llm.Turn, 0, len(history))
	for _, h := range history {
		role := llm.RoleUser
		if h.Role == string(llm.RoleAssistant) {
			role = llm.RoleAssistant
		}
		turns = append(turns, llm.Turn{Role: role, Content: h.Content})
	}

	raw, err := s.gateway.Complete(ctx, message, &llm.CompleteOptions{
		SystemInstruction: chatSystemInstruction,
		History:           turns,
	})
	if err != nil {
		return "", s.fail("chat", err)
	}

	return sanitizeUTF8(raw), nil
}

// fail logs full technical detail server-side and returns an error
// that exposes only the kind tag and its friendly message.
func (s *AssistantService) fail(op string, err error) error {
	var lerr *llm.Error
	if !errors.As(err, &lerr) {
		lerr = llm.NewError(llm.KindUnknown, err)
	}
	s.logger.Error("Assistant call failed",
		zap.String("op", op),
		zap.String("kind", lerr.Kind.String()),
		zap.Error(err),
	)
	return lerr
}

func tipsFingerprint(userName string, goalLines []string) string {
	h := sha256.New()
	h.Write([]byte(userName))
	h.Write([]byte(strings.Join(goalLines, "\n")))
	return hex.EncodeToString(h.Sum(nil))
}
