package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"PassKeeper/internal/common"
)

// NonceSize — стандартный размер nonce для GCM.
const NonceSize = 12

func newGCM(key *Key) (cipher.AEAD, error) {
	b, err := key.material()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(b)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt шифрует plain с помощью AES‑GCM и заданного ключа.
// Возвращает base64(nonce ‖ шифртекст ‖ тег); nonce новый на каждый вызов.
func Encrypt(plain []byte, key *Key) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, NonceSize)
	if err := readRandom(nonce); err != nil {
		return "", err
	}
	out := gcm.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt расшифровывает blob, созданный Encrypt, и проверяет тег.
// Неверный ключ, подмена или порча данных дают ErrAuthenticationFailed.
func Decrypt(blob string, key *Key) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	// Strict: ненулевые биты дополнения в последнем символе тоже считаются порчей.
	data, err := base64.StdEncoding.Strict().DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: bad encoding", common.ErrAuthenticationFailed)
	}
	if len(data) < NonceSize+gcm.Overhead() {
		return nil, fmt.Errorf("%w: blob too short", common.ErrAuthenticationFailed)
	}
	plain, err := gcm.Open(nil, data[:NonceSize], data[NonceSize:], nil)
	if err != nil {
		return nil, common.ErrAuthenticationFailed
	}
	return plain, nil
}
