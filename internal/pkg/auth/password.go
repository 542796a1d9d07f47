package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters. Changing them invalidates every stored credential.
const (
	ScryptN      = 16384
	ScryptR      = 8
	ScryptP      = 1
	ScryptKeyLen = 64
	SaltBytes    = 16
)

// DummyHash is a well-formed credential that no password matches. Login
// checks it for unknown usernames so they cost the same scrypt derivation
// as a wrong password.
var DummyHash = strings.Repeat("0", 2*ScryptKeyLen) + "." + strings.Repeat("0", 2*SaltBytes)

// HashPassword derives a salted scrypt key and encodes it as "<hex key>.<hex salt>".
func HashPassword(password string) (string, error) {
	rawSalt := make([]byte, SaltBytes)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(rawSalt)

	key, err := deriveKey(password, salt)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + "." + salt, nil
}

// CheckPassword reports whether password matches the stored credential.
// Malformed credentials never match.
func CheckPassword(stored, password string) bool {
	hashed, salt, ok := strings.Cut(stored, ".")
	if !ok || hashed == "" || salt == "" {
		return false
	}

	want, err := hex.DecodeString(hashed)
	if err != nil || len(want) != ScryptKeyLen {
		return false
	}

	got, err := deriveKey(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(want, got) == 1
}

func deriveKey(password, salt string) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), []byte(salt), ScryptN, ScryptR, ScryptP, ScryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}
