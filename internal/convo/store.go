// Package convo holds the ordered log of conversation turns for one
// client session. Append-only, cleared wholesale, never persisted.
package convo

import "github.com/Inshal-Amir/production-video-rag/internal/api"

// Role identifies who produced a turn.
type Role int

const (
	User Role = iota
	Assistant
)

// Turn is one conversation entry. Results is non-nil only for
// assistant turns carrying search results.
type Turn struct {
	Role    Role
	Text    string
	Results []api.SearchResult
}

// Greeting is the assistant turn every new session starts with.
const Greeting = "Hello! I am ready to search your video archives. Select a camera or ask me a question."

// Store is the conversation log. Single writer, read-only observers.
type Store struct {
	turns []Turn
}

// New creates a store seeded with the greeting turn.
func New() *Store {
	s := &Store{}
	s.Append(Turn{Role: Assistant, Text: Greeting})
	return s
}

// Append adds a turn to the end of the log.
func (s *Store) Append(t Turn) {
	s.turns = append(s.turns, t)
}

// Turns returns the log in order. Callers must not mutate it.
func (s *Store) Turns() []Turn { return s.turns }

// Len returns the number of turns.
func (s *Store) Len() int { return len(s.turns) }

// Clear empties the log.
func (s *Store) Clear() {
	s.turns = nil
}
