package admin

import (
	"sync"

	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/google/uuid"
)

// Sessions maps opaque bearer tokens to signed-in operators. Tokens live in
// memory only; a restart signs everybody out.
type Sessions struct {
	mu     sync.RWMutex
	tokens map[string]model.User
}

func NewSessions() *Sessions {
	return &Sessions{tokens: make(map[string]model.User)}
}

// Create issues a fresh token for the user.
func (s *Sessions) Create(user model.User) string {
	token := uuid.NewString()

	s.mu.Lock()
	s.tokens[token] = user
	s.mu.Unlock()

	return token
}

// Lookup resolves a token to its user. The second return is false for
// unknown or revoked tokens.
func (s *Sessions) Lookup(token string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.tokens[token]
	return user, ok
}

// Revoke invalidates a token. Revoking an unknown token is a no-op.
func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
