package service

import (
	"context"
	"sync"
	"testing"

	"PassKeeper/internal/crypto"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memSlots — потокобезопасное in-memory хранилище ячеек для тестов.
type memSlots struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

func newMemSlots() *memSlots { return &memSlots{data: map[string][]byte{}} }

func (m *memSlots) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *memSlots) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

func (m *memSlots) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memSlots) Close() error { return nil }

func (m *memSlots) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// mockSlots — testify-мок для путей с ошибками хранилища.
type mockSlots struct{ mock.Mock }

func (m *mockSlots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	b, _ := args.Get(0).([]byte)
	return b, args.Bool(1), args.Error(2)
}

func (m *mockSlots) Set(ctx context.Context, key string, value []byte) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockSlots) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockSlots) Close() error { return nil }

func testKey(t *testing.T, fill byte) *crypto.Key {
	t.Helper()
	raw := make([]byte, crypto.KeyLen)
	for i := range raw {
		raw[i] = fill
	}
	k, err := crypto.NewKey(raw)
	require.NoError(t, err)
	return k
}
