package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"

	"PassKeeper/internal/common"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// MinIterations — нижняя граница числа итераций PBKDF2.
	MinIterations = 100_000
	saltLen       = 16
)

// randReader подменяется в тестах, чтобы сымитировать недоступный CSPRNG.
var randReader io.Reader = rand.Reader

func readRandom(b []byte) error {
	if _, err := io.ReadFull(randReader, b); err != nil {
		return fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}
	return nil
}

// GenerateSalt возвращает 16 случайных байт в hex.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltLen)
	if err := readRandom(salt); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}

// DeriveKey выводит ключ AES-256 из мастер-пароля через PBKDF2-HMAC-SHA256.
// Соль используется как строка (hex-представление), а не как декодированные байты.
// Значения iterations меньше MinIterations поднимаются до минимума.
func DeriveKey(password, salt string, iterations int) (*Key, error) {
	if iterations < MinIterations {
		iterations = MinIterations
	}
	raw := pbkdf2.Key([]byte(password), []byte(salt), iterations, KeyLen, sha256.New)
	defer Zero(raw)
	return NewKey(raw)
}

// HashPassword считает проверочный хеш hex(sha256(password‖salt)).
// Хеш вычисляется независимо от DeriveKey и не используется как ключ.
func HashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword сравнивает хеш пароля с сохранённым за постоянное время.
func VerifyPassword(password, salt, wantHash string) bool {
	got := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(wantHash)) == 1
}
