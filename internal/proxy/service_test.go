package proxy

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgedash/trading-ai-proxy/internal/chat"
	"github.com/forgedash/trading-ai-proxy/internal/openai"
	"github.com/forgedash/trading-ai-proxy/internal/prompt"
	"github.com/forgedash/trading-ai-proxy/internal/session"
)

type mockGateway struct {
	reply    string
	err      error
	calls    int
	lastMsgs []chat.Message
}

func (m *mockGateway) Complete(_ context.Context, msgs []chat.Message) (string, error) {
	m.calls++
	m.lastMsgs = msgs
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func newTestService(gw *mockGateway) (*Service, *session.Store) {
	store := session.NewStore(20)
	preamble := prompt.BuildPreamble("\n\nDATA SNAPSHOT (top 5 rows per table):\n")
	return NewService(store, gw, preamble, nil), store
}

func TestHandleChatSuccess(t *testing.T) {
	gw := &mockGateway{reply: `{"message": "Showing performance for Sarah Jones...", "command": "FILTER_TRADER", "trader": "Sarah Jones"}`}
	svc, store := newTestService(gw)

	res := svc.HandleChat(context.Background(), "Show me Sarah", "alice")

	assert.Equal(t, chat.StatusSuccess, res.Status)
	require.NotNil(t, res.Message)
	assert.Equal(t, "Showing performance for Sarah Jones...", *res.Message)
	require.NotNil(t, res.Command)
	assert.Equal(t, "FILTER_TRADER", *res.Command)
	require.NotNil(t, res.Trader)
	assert.Equal(t, "Sarah Jones", *res.Trader)

	// Transcript holds the raw upstream text, not the normalized result.
	transcript := store.Transcript("alice")
	require.Len(t, transcript, 2)
	assert.Equal(t, chat.RoleUser, transcript[0].Role)
	assert.Equal(t, "Show me Sarah", transcript[0].Content)
	assert.Equal(t, chat.RoleAssistant, transcript[1].Role)
	assert.Equal(t, gw.reply, transcript[1].Content)
}

func TestHandleChatRequestAssembly(t *testing.T) {
	gw := &mockGateway{reply: `{"message": "ok"}`}
	svc, _ := newTestService(gw)

	svc.HandleChat(context.Background(), "first", "bob")
	svc.HandleChat(context.Background(), "second", "bob")

	// Second dispatch: preamble, then the full transcript including the new
	// user turn, in order.
	require.Len(t, gw.lastMsgs, 4)
	assert.Equal(t, chat.RoleSystem, gw.lastMsgs[0].Role)
	assert.Contains(t, gw.lastMsgs[0].Content, "DATA SNAPSHOT")
	assert.Equal(t, "first", gw.lastMsgs[1].Content)
	assert.Equal(t, chat.RoleAssistant, gw.lastMsgs[2].Role)
	assert.Equal(t, "second", gw.lastMsgs[3].Content)
}

func TestHandleChatEmptyQuery(t *testing.T) {
	gw := &mockGateway{reply: "unused"}
	svc, store := newTestService(gw)

	res := svc.HandleChat(context.Background(), "", "alice")

	assert.Equal(t, chat.StatusError, res.Status)
	require.NotNil(t, res.Message)
	assert.Equal(t, chat.ErrNoQueryMessage, *res.Message)
	assert.Nil(t, res.Command)
	assert.Nil(t, res.Trader)
	assert.Zero(t, gw.calls, "gateway must not be called")
	assert.Empty(t, store.Transcript("alice"), "no session mutation on validation error")
	assert.Zero(t, store.Users())
}

func TestHandleChatDefaultUserID(t *testing.T) {
	gw := &mockGateway{reply: `{"message": "ok"}`}
	svc, store := newTestService(gw)

	svc.HandleChat(context.Background(), "hello", "")

	assert.Len(t, store.Transcript(DefaultUserID), 2)
}

func TestHandleChatFallbackPaths(t *testing.T) {
	cases := map[string]error{
		"timeout":   openai.ErrTimeout,
		"upstream":  &openai.UpstreamError{Status: 500, Body: "boom"},
		"transport": &openai.TransportError{Err: errors.New("connection reset")},
	}
	for name, gwErr := range cases {
		t.Run(name, func(t *testing.T) {
			gw := &mockGateway{err: gwErr}
			svc, store := newTestService(gw)

			res := svc.HandleChat(context.Background(), "hello", "alice")

			assert.Equal(t, chat.StatusFallback, res.Status)
			require.NotNil(t, res.Message)
			assert.Equal(t, chat.FallbackMessage, *res.Message)
			assert.Nil(t, res.Command)
			assert.Nil(t, res.Trader)

			// The user turn is recorded before dispatch; the failed turn must
			// not add an assistant message.
			transcript := store.Transcript("alice")
			require.Len(t, transcript, 1)
			assert.Equal(t, chat.RoleUser, transcript[0].Role)
		})
	}
}

func TestHandleChatUnparseableReply(t *testing.T) {
	raw := "Sorry, I can only answer questions about the trading team."
	gw := &mockGateway{reply: raw}
	svc, store := newTestService(gw)

	res := svc.HandleChat(context.Background(), "weather?", "alice")

	// Parse failure is absorbed: the raw text becomes the message and the
	// turn still counts as success.
	assert.Equal(t, chat.StatusSuccess, res.Status)
	require.NotNil(t, res.Message)
	assert.Equal(t, raw, *res.Message)
	assert.Nil(t, res.Command)
	assert.Nil(t, res.Trader)
	assert.Len(t, store.Transcript("alice"), 2)
}

func TestHandleChatTrimsHistory(t *testing.T) {
	gw := &mockGateway{reply: `{"message": "ok"}`}
	svc, store := newTestService(gw)

	for i := 0; i < 15; i++ {
		svc.HandleChat(context.Background(), fmt.Sprintf("q%d", i), "alice")
	}

	assert.Len(t, store.Transcript("alice"), 20)
	// Dispatch sees preamble + capped history + the fresh user turn at most:
	// the cap is enforced after the assistant append, so the outbound list
	// never exceeds 22 entries.
	assert.LessOrEqual(t, len(gw.lastMsgs), 22)
}
