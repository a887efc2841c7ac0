package cryptox

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	expectedHex := "9290403300158e19f27e48e7087f7383b03065bf5b25ef23ebc40229616cd8b3"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	encoded := HashPassword([]byte("password123"))

	require.True(t, strings.HasPrefix(encoded, "argon2id$"))
	assert.True(t, CheckPassword(encoded, []byte("password123")))
	assert.False(t, CheckPassword(encoded, []byte("password124")))
	assert.False(t, CheckPassword(encoded, nil))
}

func TestHashPassword_SaltIsRandom(t *testing.T) {
	a := HashPassword([]byte("same"))
	b := HashPassword([]byte("same"))
	assert.NotEqual(t, a, b)
}

func TestParseHash_Malformed(t *testing.T) {
	valid := HashPassword([]byte("x"))
	parts := strings.Split(valid, "$")

	cases := map[string]string{
		"empty":        "",
		"wrong scheme": "bcrypt$" + parts[1] + "$" + parts[2],
		"missing part": "argon2id$" + parts[1],
		"bad salt hex": "argon2id$zz$" + parts[2],
		"short key":    "argon2id$" + parts[1] + "$abcd",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseHash(in)
			assert.ErrorIs(t, err, ErrMalformedHash)
			assert.False(t, CheckPassword(in, []byte("x")))
		})
	}
}
