package crypto

import (
	"fmt"

	"PassKeeper/internal/common"
)

// KeyLen — длина ключа для AES‑256 (в байтах).
const KeyLen = 32

// Key — непрозрачный симметричный ключ сессии.
// Материал ключа не покидает пакет: String, GoString и MarshalJSON его скрывают.
type Key struct {
	b []byte
}

// NewKey копирует raw в новый ключ. raw должен быть длиной KeyLen.
func NewKey(raw []byte) (*Key, error) {
	if len(raw) != KeyLen {
		return nil, fmt.Errorf("invalid key length: %d", len(raw))
	}
	b := make([]byte, KeyLen)
	copy(b, raw)
	return &Key{b: b}, nil
}

// Destroy затирает материал ключа. Повторный вызов безопасен.
func (k *Key) Destroy() {
	if k == nil {
		return
	}
	Zero(k.b)
	k.b = nil
}

// Destroyed сообщает, был ли ключ уничтожен.
func (k *Key) Destroyed() bool {
	return k == nil || k.b == nil
}

func (k *Key) material() ([]byte, error) {
	if k.Destroyed() {
		return nil, common.ErrKeyDestroyed
	}
	return k.b, nil
}

func (k *Key) String() string   { return "crypto.Key(REDACTED)" }
func (k *Key) GoString() string { return k.String() }

// MarshalJSON не даёт случайно сериализовать ключ.
func (k *Key) MarshalJSON() ([]byte, error) {
	return []byte(`"REDACTED"`), nil
}

// Zero overwrites a byte slice in memory with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
