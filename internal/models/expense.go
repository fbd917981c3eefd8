package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryTotal is one row of a per-category spending summary.
type CategoryTotal struct {
	Category Category `db:"category"`
	Total    float64  `db:"total"`
}

type Expense struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Amount      float64   `db:"amount"`
	Category    Category  `db:"category"`
	Description string    `db:"description"`
	Date        time.Time `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
