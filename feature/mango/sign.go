package mango

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sign returns the request signature the VPBX API expects:
// lowercase hex SHA-256 of apiKey + payload + salt.
func Sign(apiKey, salt, payload string) string {
	sum := sha256.Sum256([]byte(apiKey + payload + salt))
	return hex.EncodeToString(sum[:])
}
