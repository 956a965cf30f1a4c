package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	s1, err := GenerateSalt()
	require.NoError(t, err)
	s2, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, s1, 32)
	_, err = hex.DecodeString(s1)
	assert.NoError(t, err)
	assert.NotEqual(t, s1, s2)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	k1, err := DeriveKey("Str0ng!Pass123", "0011aabb", MinIterations)
	require.NoError(t, err)
	k2, err := DeriveKey("Str0ng!Pass123", "0011aabb", MinIterations)
	require.NoError(t, err)
	assert.Equal(t, k1.b, k2.b)
	assert.Len(t, k1.b, KeyLen)

	// другая соль — другой ключ
	k3, err := DeriveKey("Str0ng!Pass123", "0011aabc", MinIterations)
	require.NoError(t, err)
	assert.NotEqual(t, k1.b, k3.b)

	// ключ одного вывода расшифровывает данные другого
	blob, err := Encrypt([]byte("payload"), k1)
	require.NoError(t, err)
	plain, err := Decrypt(blob, k2)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plain))
}

func TestDeriveKey_IterationsFloor(t *testing.T) {
	low, err := DeriveKey("pw", "salt", 1)
	require.NoError(t, err)
	floor, err := DeriveKey("pw", "salt", MinIterations)
	require.NoError(t, err)
	assert.Equal(t, floor.b, low.b)
}

func TestHashPassword(t *testing.T) {
	// sha256("abc") — известный тестовый вектор
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		HashPassword("ab", "c"))

	h1 := HashPassword("Str0ng!Pass123", "salt")
	assert.Equal(t, h1, HashPassword("Str0ng!Pass123", "salt"))

	key, err := DeriveKey("Str0ng!Pass123", "salt", MinIterations)
	require.NoError(t, err)
	assert.NotEqual(t, h1, hex.EncodeToString(key.b))
}

func TestVerifyPassword(t *testing.T) {
	h := HashPassword("right", "s")
	assert.True(t, VerifyPassword("right", "s", h))
	assert.False(t, VerifyPassword("wrong", "s", h))
	assert.False(t, VerifyPassword("right", "other", h))
	assert.False(t, VerifyPassword("right", "s", ""))
}
