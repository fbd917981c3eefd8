package dto

type SetBalanceRequest struct {
	Balance *float64 `json:"balance"`
}

type BalanceAmountRequest struct {
	Amount float64 `json:"amount"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// BalanceAdjustResponse echoes the previous balance and the applied
// amount after an add or subtract operation.
type BalanceAdjustResponse struct {
	Balance         float64 `json:"balance"`
	PreviousBalance float64 `json:"previousBalance"`
	Amount          float64 `json:"amount"`
}
