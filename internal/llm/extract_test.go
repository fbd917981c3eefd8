package llm

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classifyPayload struct {
	DisplayText string   `json:"texto_chat"`
	Amount      *float64 `json:"valor"`
	Category    string   `json:"categoria"`
	Icon        string   `json:"icone"`
}

func TestExtractJSONFromProse(t *testing.T) {
	raw := "Claro! Aqui está o resultado:\n```json\n" +
		`{"texto_chat": "Gasto Classificado ✅", "valor": 50.0, "categoria": "Mercado", "icone": "🛒"}` +
		"\n```\nEspero ter ajudado!"

	var payload classifyPayload
	require.NoError(t, ExtractJSON(raw, &payload))

	assert.Equal(t, "Gasto Classificado ✅", payload.DisplayText)
	require.NotNil(t, payload.Amount)
	assert.Equal(t, 50.0, *payload.Amount)
	assert.Equal(t, "Mercado", payload.Category)
	assert.Equal(t, "🛒", payload.Icon)
}

func TestExtractJSONRepairsTrailingComma(t *testing.T) {
	raw := `{"dicas": ["primeira dica 💪", "segunda dica 🎯",],}`

	var payload struct {
		Tips []string `json:"dicas"`
	}
	require.NoError(t, ExtractJSON(raw, &payload))
	assert.Equal(t, []string{"primeira dica 💪", "segunda dica 🎯"}, payload.Tips)
}

func TestExtractJSONRepairsControlChars(t *testing.T) {
	raw := "{\"categoria\": \"Lazer\x01\x02\"}"

	var payload classifyPayload
	require.NoError(t, ExtractJSON(raw, &payload))
	assert.Equal(t, "Lazer", payload.Category)
}

func TestExtractJSONNoObject(t *testing.T) {
	var payload classifyPayload
	err := ExtractJSON("não consegui entender a sua mensagem", &payload)
	require.Error(t, err)

	var lerr *Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, KindResponseFormat, lerr.Kind)
}

func TestSnippetKeepsRunesIntact(t *testing.T) {
	// 3-byte runes, so byte 200 falls inside a rune.
	long := strings.Repeat("€", 100)

	got := snippet(long)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasPrefix(long, got))
	assert.LessOrEqual(t, len(got), 200)

	short := "resposta curta"
	assert.Equal(t, short, snippet(short))
}

func TestExtractJSONUnrepairable(t *testing.T) {
	var payload classifyPayload
	err := ExtractJSON(`{"categoria": }`, &payload)
	require.Error(t, err)

	var lerr *Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, KindResponseFormat, lerr.Kind)
}
