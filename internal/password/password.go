// Package password derives and verifies salted password credentials using
// PBKDF2-HMAC-SHA256.
//
// Credentials are encoded as "pbkdf2$sha256$<iterations>$<hex salt>$<hex key>".
// The dollar delimiter cannot occur inside the hex-encoded fields, so the
// encoding splits unambiguously.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	algorithm = "pbkdf2"
	digest    = "sha256"

	// DefaultIterations is the PBKDF2 iteration count for newly derived
	// credentials. Stored per credential, so it can be raised without
	// invalidating existing hashes.
	DefaultIterations = 120000

	saltLen = 16
	keyLen  = 32
)

// Hash derives an encoded credential for the given password using a fresh
// random salt. The only failure mode is the system entropy source.
func Hash(plain string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	key := pbkdf2.Key([]byte(plain), salt, DefaultIterations, keyLen, sha256.New)
	return fmt.Sprintf("%s$%s$%d$%s$%s",
		algorithm, digest, DefaultIterations,
		hex.EncodeToString(salt), hex.EncodeToString(key),
	), nil
}

// Verify reports whether plain matches the encoded credential.
//
// The key is re-derived with the salt and iteration count stored in the
// encoding, not the current defaults, so credentials hashed under older
// parameters keep verifying. Any malformed or truncated encoding returns
// false rather than an error, and the final comparison is constant-time.
func Verify(plain, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return false
	}
	if parts[0] != algorithm || parts[1] != digest {
		return false
	}
	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := hex.DecodeString(parts[3])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[4])
	if err != nil || len(want) == 0 {
		return false
	}
	got := pbkdf2.Key([]byte(plain), salt, iterations, len(want), sha256.New)
	if len(got) != len(want) {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}
