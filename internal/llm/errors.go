package llm

import (
	"errors"
	"fmt"
)

// Kind classifies a failed assistant call. The kind is set by the
// layer that detects the failure (the transport sets it from status
// codes) and is never re-derived from error text downstream.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindAuthentication
	KindAuthorization
	KindRateLimit
	KindTimeout
	KindResponseFormat
	KindIncomplete
	KindNoGoals
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindRateLimit:
		return "rate_limit"
	case KindTimeout:
		return "timeout"
	case KindResponseFormat:
		return "response_format"
	case KindIncomplete:
		return "incomplete"
	case KindNoGoals:
		return "no_goals"
	default:
		return "unknown"
	}
}

// friendlyMessages are the only error strings ever shown to an end
// user. Raw transport errors stay server-side.
var friendlyMessages = map[Kind]string{
	KindConfiguration:  "Oops! Não consegui autenticar com a IA. Verifique a configuração da API.",
	KindAuthentication: "Oops! Não consegui autenticar com a IA. Verifique a configuração da API.",
	KindAuthorization:  "Desculpe! Parece que há um problema com a autenticação da IA. Verifique se a chave de API está correta.",
	KindRateLimit:      "Muitas requisições no momento! Tente novamente em alguns segundos.",
	KindTimeout:        "A IA está demorando a responder. Tente novamente!",
	KindResponseFormat: "A IA teve dificuldade em processar sua mensagem. Tente ser mais específico!",
	KindIncomplete:     "A IA teve dificuldade em processar sua mensagem. Tente ser mais específico!",
	KindNoGoals:        "Crie uma meta primeiro para receber dicas personalizadas!",
	KindUnknown:        "Algo deu errado ao processar sua mensagem. Tente novamente mais tarde.",
}

// Error carries an internal kind tag for logging alongside the cause.
type Error struct {
	Kind  Kind
	cause error
}

func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: cause}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Friendly returns the user-displayable message for the error's kind.
func (e *Error) Friendly() string {
	if msg, ok := friendlyMessages[e.Kind]; ok {
		return msg
	}
	return friendlyMessages[KindUnknown]
}

// FriendlyMessage maps any error to a user-displayable message.
// Errors outside the taxonomy get the generic fallback.
func FriendlyMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Friendly()
	}
	return friendlyMessages[KindUnknown]
}
