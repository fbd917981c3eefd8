package dto

type CreateGoalRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline,omitempty"`
	Status        string  `json:"status,omitempty"`
}

// UpdateGoalRequest is a partial update; nil fields are left
// untouched. An explicit empty Deadline clears the stored deadline.
type UpdateGoalRequest struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	TargetAmount  *float64 `json:"targetAmount,omitempty"`
	CurrentAmount *float64 `json:"currentAmount,omitempty"`
	Deadline      *string  `json:"deadline,omitempty"`
	Status        *string  `json:"status,omitempty"`
}

type GoalResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
}
