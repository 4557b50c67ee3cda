package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/seth-vargas/biztime/internal/shared"
)

// Verifier checks API tokens against a bcrypt hash.
type Verifier struct {
	hash []byte
}

// NewVerifier constructs a Verifier. An empty hash disables verification.
func NewVerifier(hash string) *Verifier {
	return &Verifier{hash: []byte(strings.TrimSpace(hash))}
}

// Enabled reports whether a token hash is configured.
func (v *Verifier) Enabled() bool {
	return v != nil && len(v.hash) > 0
}

// Verify validates a plaintext token.
func (v *Verifier) Verify(token string) error {
	if !v.Enabled() {
		return nil
	}
	if token == "" {
		return shared.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(token)); err != nil {
		return shared.ErrUnauthorized
	}
	return nil
}
