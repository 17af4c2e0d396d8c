// Package proxy orchestrates one chat turn: validate, record the user turn,
// assemble the upstream request, dispatch, normalize, record the assistant
// turn. Every failure past validation is flattened into the same canned
// fallback so the dashboard always gets a usable envelope.
package proxy

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/forgedash/trading-ai-proxy/internal/chat"
	"github.com/forgedash/trading-ai-proxy/internal/normalize"
	"github.com/forgedash/trading-ai-proxy/internal/openai"
	"github.com/forgedash/trading-ai-proxy/internal/session"
)

// DefaultUserID keys sessions for callers that supply no user id.
const DefaultUserID = "default"

// Completer is the outbound boundary to the completion service.
type Completer interface {
	Complete(ctx context.Context, msgs []chat.Message) (string, error)
}

// Service holds the immutable preamble and the per-user session store.
type Service struct {
	store    *session.Store
	gateway  Completer
	preamble chat.Message
	log      *zap.Logger
}

// NewService wires the proxy core. The preamble must already contain the data
// snapshot; it is reused unchanged for every request.
func NewService(store *session.Store, gateway Completer, preamble chat.Message, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    store,
		gateway:  gateway,
		preamble: preamble,
		log:      log,
	}
}

// HandleChat runs one turn for userID. An empty query is rejected before any
// session or gateway interaction. Upstream, timeout, and transport failures
// all map to the canned fallback; on those paths no assistant turn is
// recorded, so a failed call never leaves a half-written transcript.
func (s *Service) HandleChat(ctx context.Context, query, userID string) (result chat.Result) {
	if query == "" {
		return chat.NoQuery()
	}
	if userID == "" {
		userID = DefaultUserID
	}

	// The upstream reply is untrusted input end to end; a panic anywhere in
	// the turn must surface as the fallback envelope, not a 500.
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("chat turn panicked", zap.Any("panic", r), zap.String("user_id", userID))
			result = chat.Fallback()
		}
	}()

	s.store.AppendUser(userID, query)

	transcript := s.store.Transcript(userID)
	msgs := make([]chat.Message, 0, len(transcript)+1)
	msgs = append(msgs, s.preamble)
	msgs = append(msgs, transcript...)

	raw, err := s.gateway.Complete(ctx, msgs)
	if err != nil {
		s.logFailure(userID, err)
		return chat.Fallback()
	}

	fields, stage := normalize.Parse(raw)
	s.store.AppendAssistant(userID, raw)

	s.log.Info("chat turn completed",
		zap.String("user_id", userID),
		zap.Stringer("parse_stage", stage),
	)

	return chat.Result{
		Message: fields.Message,
		Command: fields.Command,
		Trader:  fields.Trader,
		Status:  chat.StatusSuccess,
	}
}

func (s *Service) logFailure(userID string, err error) {
	var upstream *openai.UpstreamError
	switch {
	case errors.Is(err, openai.ErrTimeout):
		s.log.Warn("upstream timeout", zap.String("user_id", userID))
	case errors.As(err, &upstream):
		s.log.Warn("upstream error", zap.String("user_id", userID), zap.Int("status", upstream.Status))
	default:
		s.log.Warn("transport error", zap.String("user_id", userID), zap.Error(err))
	}
}
