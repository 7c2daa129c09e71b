package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns a public identifier: 32 lowercase hex chars, no separators.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewTransactionID returns a time-ordered payment reference, e.g.
// "TXN-01928c1e-9b0c-7cde-8a41-5d2f3c9e0b7a". Falls back to a random v4
// uuid if the v7 clock read fails.
func NewTransactionID() string {
	u, err := uuid.NewV7()
	if err != nil {
		u = uuid.New()
	}
	return "TXN-" + u.String()
}

// IsTransactionID reports whether s has the NewTransactionID shape.
func IsTransactionID(s string) bool {
	rest, ok := strings.CutPrefix(s, "TXN-")
	if !ok {
		return false
	}
	_, err := uuid.Parse(rest)
	return err == nil
}
