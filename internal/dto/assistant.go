package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ClassifyExpenseRequest struct {
	Description string `json:"description"`
}

// ExpenseClassification is the validated result of classifying one
// free-text expense description. All four fields are always set.
type ExpenseClassification struct {
	DisplayText string  `json:"displayText"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Icon        string  `json:"icon"`
}

// FlexAmount tolerates goal amounts arriving as JSON numbers or
// numeric strings; anything non-numeric coerces to zero so one
// malformed goal cannot fail the whole batch.
type FlexAmount struct {
	decimal.Decimal
}

func (a *FlexAmount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

// GoalSnapshot is the caller-supplied read-only view of a goal used
// for tips generation.
type GoalSnapshot struct {
	Title         string     `json:"title"`
	CurrentAmount FlexAmount `json:"currentAmount"`
	TargetAmount  FlexAmount `json:"targetAmount"`
	Deadline      string     `json:"deadline,omitempty"`
}

type GoalsTipsRequest struct {
	Goals    []GoalSnapshot `json:"goals"`
	UserName string         `json:"userName,omitempty"`
}

type GoalsTips struct {
	Tips []string `json:"tips"`
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history,omitempty"`
}

type ChatResponse struct {
	Message string `json:"message"`
}
