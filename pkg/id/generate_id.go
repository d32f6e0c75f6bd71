// Package id generates the external identifiers used across the engine.
// Every entity (application, client, loan, installment, task, document)
// carries one of these alongside its numeric primary key.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns 32 lowercase hex characters, the format the hex32
// request validator expects. No separators, no prefixes.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
