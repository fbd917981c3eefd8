package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumina/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type gigachatStub struct {
	mux *http.ServeMux

	oauthCalls int
	chatCalls  int

	chatStatus   int
	chatReply    string
	chatDelay    time.Duration
	lastMessages []chatMessage
}

func newGigachatStub() *gigachatStub {
	s := &gigachatStub{
		mux:        http.NewServeMux(),
		chatStatus: http.StatusOK,
		chatReply:  "ok",
	}

	s.mux.HandleFunc("/oauth", func(w http.ResponseWriter, r *http.Request) {
		s.oauthCalls++
		if r.Header.Get("RqUID") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"expires_in":   1800,
		})
	})

	s.mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		s.chatCalls++
		if s.chatDelay > 0 {
			time.Sleep(s.chatDelay)
		}
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		s.lastMessages = req.Messages

		if s.chatStatus != http.StatusOK {
			w.WriteHeader(s.chatStatus)
			return
		}
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, s.chatReply)
	})

	return s
}

func newTestGateway(t *testing.T, stub *gigachatStub) *GigaChatGateway {
	t.Helper()
	srv := httptest.NewServer(stub.mux)
	t.Cleanup(srv.Close)

	cfg := &config.GigaChatConfig{
		APIKey:   "dGVzdDp0ZXN0",
		Scope:    "GIGACHAT_API_PERS",
		Model:    "GigaChat",
		OAuthURL: srv.URL + "/oauth",
		BaseURL:  srv.URL,
		Timeout:  5 * time.Second,
	}
	return NewGigaChatGateway(cfg, zap.NewNop())
}

func TestCompleteMissingAPIKey(t *testing.T) {
	stub := newGigachatStub()
	gw := newTestGateway(t, stub)
	gw.cfg.APIKey = ""

	_, err := gw.Complete(context.Background(), "oi", nil)
	require.Error(t, err)

	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, KindConfiguration, lerr.Kind)
	assert.Zero(t, stub.oauthCalls, "no network call before credentials are checked")
	assert.Zero(t, stub.chatCalls)
}

func TestCompleteMessageOrdering(t *testing.T) {
	stub := newGigachatStub()
	stub.chatReply = "resposta"
	gw := newTestGateway(t, stub)

	got, err := gw.Complete(context.Background(), "pergunta final", &CompleteOptions{
		SystemInstruction: "instrução",
		History: []Turn{
			{Role: RoleUser, Content: "primeira"},
			{Role: RoleAssistant, Content: "segunda"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "resposta", got)

	require.Len(t, stub.lastMessages, 4)
	assert.Equal(t, chatMessage{Role: RoleSystem, Content: "instrução"}, stub.lastMessages[0])
	assert.Equal(t, chatMessage{Role: RoleUser, Content: "primeira"}, stub.lastMessages[1])
	assert.Equal(t, chatMessage{Role: RoleAssistant, Content: "segunda"}, stub.lastMessages[2])
	assert.Equal(t, chatMessage{Role: RoleUser, Content: "pergunta final"}, stub.lastMessages[3])
}

func TestCompleteReusesToken(t *testing.T) {
	stub := newGigachatStub()
	gw := newTestGateway(t, stub)

	_, err := gw.Complete(context.Background(), "um", nil)
	require.NoError(t, err)
	_, err = gw.Complete(context.Background(), "dois", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, stub.oauthCalls)
	assert.Equal(t, 2, stub.chatCalls)
}

func TestCompleteStatusTaxonomy(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{http.StatusUnauthorized, KindAuthentication},
		{http.StatusForbidden, KindAuthorization},
		{http.StatusTooManyRequests, KindRateLimit},
		{http.StatusInternalServerError, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			stub := newGigachatStub()
			stub.chatStatus = tt.status
			gw := newTestGateway(t, stub)

			_, err := gw.Complete(context.Background(), "oi", nil)
			require.Error(t, err)

			var lerr *Error
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, tt.kind, lerr.Kind)
		})
	}
}

func TestCompleteTimeout(t *testing.T) {
	stub := newGigachatStub()
	stub.chatDelay = 500 * time.Millisecond
	gw := newTestGateway(t, stub)
	gw.httpClient.Timeout = 50 * time.Millisecond

	_, err := gw.Complete(context.Background(), "oi", nil)
	require.Error(t, err)

	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, KindTimeout, lerr.Kind)
}

func TestCompleteContextDeadline(t *testing.T) {
	stub := newGigachatStub()
	stub.chatDelay = 500 * time.Millisecond
	gw := newTestGateway(t, stub)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := gw.Complete(ctx, "oi", nil)
	require.Error(t, err)

	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, KindTimeout, lerr.Kind)
}

func TestCompleteInvalidatesTokenOn401(t *testing.T) {
	stub := newGigachatStub()
	stub.chatStatus = http.StatusUnauthorized
	gw := newTestGateway(t, stub)

	_, err := gw.Complete(context.Background(), "oi", nil)
	require.Error(t, err)

	stub.chatStatus = http.StatusOK
	_, err = gw.Complete(context.Background(), "de novo", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, stub.oauthCalls, "second call refetches the token")
}

func TestCompleteEmptyChoices(t *testing.T) {
	stub := newGigachatStub()
	stub.chatReply = ""
	gw := newTestGateway(t, stub)

	_, err := gw.Complete(context.Background(), "oi", nil)
	require.Error(t, err)

	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, KindResponseFormat, lerr.Kind)
}
