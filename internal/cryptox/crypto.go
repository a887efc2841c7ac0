// Package cryptox implements the salted password hashes used by the
// credential store.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	hashScheme = "argon2id"
	saltSize   = 16
	keySize    = 32
)

// ErrMalformedHash is returned when an encoded hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// HashPassword returns "argon2id$<hex salt>$<hex key>" for password using a
// fresh random salt.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltSize)
	key := DeriveKey(password, salt)
	return fmt.Sprintf("%s$%s$%s", hashScheme, hex.EncodeToString(salt), hex.EncodeToString(key))
}

// ParseHash splits an encoded hash into salt and key.
func ParseHash(encoded string) (salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashScheme {
		return nil, nil, ErrMalformedHash
	}
	if salt, err = hex.DecodeString(parts[1]); err != nil || len(salt) == 0 {
		return nil, nil, ErrMalformedHash
	}
	if key, err = hex.DecodeString(parts[2]); err != nil || len(key) != keySize {
		return nil, nil, ErrMalformedHash
	}
	return salt, key, nil
}

// CheckPassword reports whether password matches encoded. Malformed hashes
// never match.
func CheckPassword(encoded string, password []byte) bool {
	salt, key, err := ParseHash(encoded)
	if err != nil {
		return false
	}
	candidate := DeriveKey(password, salt)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}
