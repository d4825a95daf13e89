// Package auth provides password hashing and access token issuance.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PASETO v4 requires a 256-bit (32-byte) symmetric key.
const keyLength = 32

// keyFileName is the hex-encoded key file kept next to the database.
const keyFileName = "auth.key"

// LoadOrGenerateKey returns the PASETO v4 symmetric key for access tokens,
// reading <dataDir>/auth.key when it exists and generating a fresh key there
// otherwise.
func LoadOrGenerateKey(dataDir string) ([]byte, error) {
	keyPath := filepath.Join(dataDir, keyFileName)

	//#nosec G304 -- key path is derived from the validated data directory
	raw, err := os.ReadFile(keyPath)
	if err == nil {
		return decodeKeyFile(raw)
	}

	key := make([]byte, keyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate auth key: %w", err)
	}
	if err := writeKeyFile(dataDir, keyPath, key); err != nil {
		return nil, err
	}
	return key, nil
}

// decodeKeyFile parses a stored key file and checks the decoded length, so a
// truncated or hand-edited file fails loudly instead of producing a weak key.
func decodeKeyFile(raw []byte) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("auth key file is not valid hex: %w", err)
	}
	if len(key) != keyLength {
		return nil, fmt.Errorf("auth key is %d bytes, want %d", len(key), keyLength)
	}
	return key, nil
}

func writeKeyFile(dataDir, keyPath string, key []byte) error {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(keyPath, []byte(hex.EncodeToString(key)), 0o600); err != nil {
		return fmt.Errorf("save auth key: %w", err)
	}
	return nil
}
