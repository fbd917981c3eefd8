package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"number", `{"currentAmount": 1200.5}`, "1200.5"},
		{"numeric string", `{"currentAmount": "350.75"}`, "350.75"},
		{"empty string", `{"currentAmount": ""}`, "0"},
		{"null", `{"currentAmount": null}`, "0"},
		{"non-numeric string", `{"currentAmount": "muito"}`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g GoalSnapshot
			require.NoError(t, json.Unmarshal([]byte(tt.in), &g))
			assert.Equal(t, tt.want, g.CurrentAmount.String())
		})
	}
}

func TestGoalSnapshotUnmarshal(t *testing.T) {
	raw := `{"title":"Viagem","currentAmount":"1200","targetAmount":4000,"deadline":"2026-12-31"}`

	var g GoalSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &g))

	assert.Equal(t, "Viagem", g.Title)
	assert.Equal(t, "1200", g.CurrentAmount.String())
	assert.Equal(t, "4000", g.TargetAmount.String())
	assert.Equal(t, "2026-12-31", g.Deadline)
}
