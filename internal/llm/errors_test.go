package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "taxonomy error",
			err:  NewError(KindRateLimit, errors.New("429")),
			want: "Muitas requisições no momento! Tente novamente em alguns segundos.",
		},
		{
			name: "wrapped taxonomy error",
			err:  fmt.Errorf("calling assistant: %w", NewError(KindNoGoals, nil)),
			want: "Crie uma meta primeiro para receber dicas personalizadas!",
		},
		{
			name: "plain error falls back to generic",
			err:  errors.New("boom"),
			want: "Algo deu errado ao processar sua mensagem. Tente novamente mais tarde.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FriendlyMessage(tt.err))
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewError(KindTimeout, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "timeout")
}
