// Package chat defines the message and result types shared by the proxy core.
package chat

// Role identifies the author of a transcript message. It is a closed set;
// transcripts never carry free-form role strings.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single role-tagged entry in a conversation transcript.
// Messages are immutable once appended.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Result is the envelope returned to the dashboard for every chat turn,
// identical in shape whether the turn succeeded, fell back, or was rejected.
// Nil fields marshal as JSON null, which the dashboard relies on.
type Result struct {
	Message *string `json:"message"`
	Command *string `json:"command"`
	Trader  *string `json:"trader"`
	Status  string  `json:"status"`
}

// Statuses carried by Result.
const (
	StatusSuccess  = "success"
	StatusFallback = "fallback"
	StatusError    = "error"
)

// FallbackMessage is returned verbatim whenever the upstream call or its
// response cannot produce a trustworthy result.
const FallbackMessage = "🤖 I can help you analyze our trading team! Try asking about specific traders, performance metrics, or market insights."

// ErrNoQueryMessage is returned when the caller supplies no query text.
const ErrNoQueryMessage = "🤖 Error: No query provided"

// Fallback builds the canned fallback result.
func Fallback() Result {
	msg := FallbackMessage
	return Result{Message: &msg, Status: StatusFallback}
}

// NoQuery builds the validation-error result for an empty query.
func NoQuery() Result {
	msg := ErrNoQueryMessage
	return Result{Message: &msg, Status: StatusError}
}
