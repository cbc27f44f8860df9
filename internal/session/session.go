// Package session maintains the in-process mapping from opaque bearer tokens
// to authenticated user identities.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// tokenLen is the number of random bytes per token. 32 bytes of entropy makes
// the collision probability negligible, so no uniqueness check is performed.
const tokenLen = 32

// Registry maps bearer tokens to user ids. Tokens live until explicitly
// revoked or the process restarts; there is no expiry policy. A user may hold
// any number of concurrent tokens.
//
// A Registry must be created with NewRegistry and is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]int64
}

// NewRegistry returns an empty session registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]int64)}
}

// Issue generates a fresh random token bound to userID and returns it.
func (r *Registry) Issue(userID int64) (string, error) {
	buf := make([]byte, tokenLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	r.mu.Lock()
	r.tokens[token] = userID
	r.mu.Unlock()
	return token, nil
}

// Resolve returns the user id bound to token. The second return is false when
// the token is unknown; absence means unauthenticated, not an error.
func (r *Registry) Resolve(token string) (int64, bool) {
	r.mu.RLock()
	userID, ok := r.tokens[token]
	r.mu.RUnlock()
	return userID, ok
}

// Revoke removes the token's binding. Revoking an unknown token is a no-op.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	delete(r.tokens, token)
	r.mu.Unlock()
}
