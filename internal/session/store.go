// Package session owns all mutable conversation state: one bounded transcript
// per user, created lazily on first contact and kept for the process lifetime.
package session

import (
	"sync"

	"github.com/forgedash/trading-ai-proxy/internal/chat"
)

// DefaultHistoryLimit is the retained transcript size enforced after every
// assistant turn.
const DefaultHistoryLimit = 20

type userSession struct {
	mu         sync.Mutex
	transcript []chat.Message
}

// Store maps user IDs to transcripts. Mutation of a single user's transcript
// is serialized by a per-session mutex; distinct users proceed in parallel.
// Sessions are never evicted, so the store grows with the number of distinct
// users seen since startup.
type Store struct {
	mu       sync.Mutex
	limit    int
	sessions map[string]*userSession
}

// NewStore creates a Store trimming transcripts to limit messages. A limit
// <= 0 falls back to DefaultHistoryLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Store{
		limit:    limit,
		sessions: make(map[string]*userSession),
	}
}

// getOrCreate returns the session for userID, allocating it on first contact.
// It never fails.
func (s *Store) getOrCreate(userID string) *userSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &userSession{}
		s.sessions[userID] = sess
	}
	return sess
}

// AppendUser appends a user turn to the transcript.
func (s *Store) AppendUser(userID, text string) {
	sess := s.getOrCreate(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.transcript = append(sess.transcript, chat.Message{Role: chat.RoleUser, Content: text})
}

// AppendAssistant appends the raw upstream reply as an assistant turn and then
// enforces the retention cap: only the most recent limit messages survive,
// oldest discarded first.
func (s *Store) AppendAssistant(userID, rawText string) {
	sess := s.getOrCreate(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.transcript = append(sess.transcript, chat.Message{Role: chat.RoleAssistant, Content: rawText})
	if len(sess.transcript) > s.limit {
		trimmed := make([]chat.Message, s.limit)
		copy(trimmed, sess.transcript[len(sess.transcript)-s.limit:])
		sess.transcript = trimmed
	}
}

// Transcript returns a copy of the user's transcript, oldest first. Reading
// an unknown user yields nil without allocating a session.
func (s *Store) Transcript(userID string) []chat.Message {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]chat.Message, len(sess.transcript))
	copy(out, sess.transcript)
	return out
}

// Users returns the number of distinct users with a session.
func (s *Store) Users() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
