package llm

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"lumina/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one prior message of a conversation, oldest first.
type Turn struct {
	Role    Role
	Content string
}

// CompleteOptions carries the optional conversation context for a
// completion. History ordering is preserved exactly as supplied.
type CompleteOptions struct {
	SystemInstruction string
	History           []Turn
}

// Gateway is the sole boundary allowed to perform network I/O against
// the generative-model service.
type Gateway interface {
	Complete(ctx context.Context, prompt string, opts *CompleteOptions) (string, error)
}

// GigaChatGateway talks to the GigaChat REST API. Failures are
// classified into the Kind taxonomy directly from status codes; the
// only state kept between calls is the cached OAuth token.
//
// API documentation: https://developers.sber.ru/docs/ru/gigachat/api/main
type GigaChatGateway struct {
	cfg        *config.GigaChatConfig
	logger     *zap.Logger
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewGigaChatGateway(cfg *config.GigaChatConfig, logger *zap.Logger) *GigaChatGateway {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	return &GigaChatGateway{
		cfg:        cfg,
		logger:     logger,
		httpClient: httpClient,
	}
}

type chatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one prompt, optionally preceded by a system
// instruction and prior turns, and returns the model's raw text.
func (g *GigaChatGateway) Complete(ctx context.Context, prompt string, opts *CompleteOptions) (string, error) {
	if g.cfg.APIKey == "" {
		return "", NewError(KindConfiguration, errors.New("GIGACHAT_API_KEY is not set"))
	}

	token, err := g.ensureToken(ctx)
	if err != nil {
		return "", err
	}

	if opts == nil {
		opts = &CompleteOptions{}
	}

	messages := make([]chatMessage, 0, len(opts.History)+2)
	if opts.SystemInstruction != "" {
		messages = append(messages, chatMessage{Role: RoleSystem, Content: opts.SystemInstruction})
	}
	for _, turn := range opts.History {
		messages = append(messages, chatMessage{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, chatMessage{Role: RoleUser, Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       g.cfg.Model,
		Messages:    messages,
		Temperature: 0.3,
		Stream:      false,
	})
	if err != nil {
		return "", NewError(KindUnknown, fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", NewError(KindUnknown, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		g.logger.Error("Completion request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(bodyBytes)),
		)
		if resp.StatusCode == http.StatusUnauthorized {
			// Cached token is no longer accepted, refetch next call
			g.invalidateToken()
		}
		return "", classifyStatus(resp.StatusCode, bodyBytes)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", NewError(KindResponseFormat, fmt.Errorf("failed to decode completion: %w", err))
	}

	if len(completion.Choices) == 0 {
		return "", NewError(KindResponseFormat, errors.New("no choices in completion"))
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", NewError(KindResponseFormat, errors.New("empty completion content"))
	}

	return content, nil
}

// ensureToken returns a valid cached access token or obtains a fresh
// one from the OAuth endpoint. The API key must already be
// Base64-encoded, per the GigaChat API docs.
func (g *GigaChatGateway) ensureToken(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry.Add(-30*time.Second)) {
		return g.accessToken, nil
	}

	formData := url.Values{}
	formData.Set("scope", g.cfg.Scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.OAuthURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return "", NewError(KindUnknown, fmt.Errorf("failed to create OAuth request: %w", err))
	}

	rqUID := uuid.New().String()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", rqUID)
	req.Header.Set("Authorization", "Basic "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		g.logger.Error("OAuth request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(bodyBytes)),
			zap.String("rq_uid", rqUID),
		)
		return "", classifyStatus(resp.StatusCode, bodyBytes)
	}

	var oauthResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return "", NewError(KindUnknown, fmt.Errorf("failed to decode OAuth response: %w", err))
	}
	if oauthResp.AccessToken == "" {
		return "", NewError(KindAuthentication, errors.New("empty access token in OAuth response"))
	}

	expiresIn := oauthResp.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 1800
	}

	g.accessToken = oauthResp.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	g.logger.Info("Access token obtained", zap.Int("expires_in", expiresIn))

	return g.accessToken, nil
}

func classifyStatus(status int, body []byte) *Error {
	cause := fmt.Errorf("service returned status %d: %s", status, body)
	switch status {
	case http.StatusUnauthorized:
		return NewError(KindAuthentication, cause)
	case http.StatusForbidden:
		return NewError(KindAuthorization, cause)
	case http.StatusTooManyRequests:
		return NewError(KindRateLimit, cause)
	default:
		return NewError(KindUnknown, cause)
	}
}

func (g *GigaChatGateway) invalidateToken() {
	g.mu.Lock()
	g.accessToken = ""
	g.tokenExpiry = time.Time{}
	g.mu.Unlock()
}

func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(KindTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewError(KindTimeout, err)
	}
	return NewError(KindUnknown, err)
}
