package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/forgedash/trading-ai-proxy/internal/chat"
)

func TestAppendAndTranscript(t *testing.T) {
	s := NewStore(20)
	s.AppendUser("alice", "hello")
	s.AppendAssistant("alice", `{"message":"hi"}`)

	got := s.Transcript("alice")
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Role != chat.RoleUser || got[0].Content != "hello" {
		t.Errorf("unexpected first message: %+v", got[0])
	}
	if got[1].Role != chat.RoleAssistant || got[1].Content != `{"message":"hi"}` {
		t.Errorf("unexpected second message: %+v", got[1])
	}
}

func TestTranscriptIsCopy(t *testing.T) {
	s := NewStore(20)
	s.AppendUser("alice", "hello")

	got := s.Transcript("alice")
	got[0].Content = "mutated"

	if s.Transcript("alice")[0].Content != "hello" {
		t.Fatal("transcript copy leaked into store")
	}
}

func TestRetentionCap(t *testing.T) {
	s := NewStore(20)
	for i := 0; i < 30; i++ {
		s.AppendUser("bob", fmt.Sprintf("q%d", i))
		s.AppendAssistant("bob", fmt.Sprintf("a%d", i))
	}

	got := s.Transcript("bob")
	if len(got) != 20 {
		t.Fatalf("expected transcript capped at 20, got %d", len(got))
	}
	// 60 messages appended; survivors are the most recent 20, oldest first.
	if got[0].Content != "q20" {
		t.Errorf("expected oldest survivor q20, got %q", got[0].Content)
	}
	if got[19].Content != "a29" {
		t.Errorf("expected newest survivor a29, got %q", got[19].Content)
	}
	for i := 0; i < 20; i += 2 {
		if got[i].Role != chat.RoleUser || got[i+1].Role != chat.RoleAssistant {
			t.Fatalf("role order broken at %d: %v %v", i, got[i].Role, got[i+1].Role)
		}
	}
}

func TestCapOnlyEnforcedOnAssistantAppend(t *testing.T) {
	s := NewStore(3)
	for i := 0; i < 5; i++ {
		s.AppendUser("carol", fmt.Sprintf("q%d", i))
	}
	if got := len(s.Transcript("carol")); got != 5 {
		t.Fatalf("user appends should not trim, got %d", got)
	}
	s.AppendAssistant("carol", "a")
	if got := len(s.Transcript("carol")); got != 3 {
		t.Fatalf("expected trim to 3 after assistant append, got %d", got)
	}
}

func TestDefaultLimit(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < 25; i++ {
		s.AppendAssistant("dave", "a")
	}
	if got := len(s.Transcript("dave")); got != DefaultHistoryLimit {
		t.Fatalf("expected default cap %d, got %d", DefaultHistoryLimit, got)
	}
}

func TestUsersIsolated(t *testing.T) {
	s := NewStore(20)
	s.AppendUser("u1", "one")
	s.AppendUser("u2", "two")

	if got := s.Transcript("u1"); len(got) != 1 || got[0].Content != "one" {
		t.Fatalf("u1 transcript polluted: %+v", got)
	}
	if s.Users() != 2 {
		t.Fatalf("expected 2 users, got %d", s.Users())
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := NewStore(1000)
	var wg sync.WaitGroup
	for u := 0; u < 8; u++ {
		userID := fmt.Sprintf("user%d", u)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.AppendUser(userID, "q")
				s.AppendAssistant(userID, "a")
			}
		}()
	}
	wg.Wait()

	for u := 0; u < 8; u++ {
		userID := fmt.Sprintf("user%d", u)
		if got := len(s.Transcript(userID)); got != 200 {
			t.Errorf("%s: expected 200 messages, got %d", userID, got)
		}
	}
}
