package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"PassKeeper/internal/common"
	"PassKeeper/internal/crypto"
	"PassKeeper/internal/model"
	"PassKeeper/internal/repo"

	"github.com/google/uuid"
)

// RecordStore хранит всю коллекцию записей одним зашифрованным блобом.
// Любая мутация — это LoadAll → изменение в памяти → SaveAll под одним ключом.
type RecordStore struct {
	slots repo.SlotRepository
	now   func() time.Time
}

// NewRecordStore создаёт хранилище записей поверх ячеек.
func NewRecordStore(slots repo.SlotRepository) *RecordStore {
	return &RecordStore{slots: slots, now: time.Now}
}

func (s *RecordStore) nowMillis() int64 { return s.now().UnixMilli() }

// LoadAll читает и расшифровывает коллекцию. Пустая ячейка — пустой список.
func (s *RecordStore) LoadAll(ctx context.Context, key *crypto.Key) ([]model.CredentialRecord, error) {
	b, ok, err := s.slots.Get(ctx, EntriesSlot)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	if !ok || len(b) == 0 {
		return []model.CredentialRecord{}, nil
	}
	plain, err := crypto.Decrypt(string(b), key)
	if err != nil {
		if errors.Is(err, common.ErrKeyDestroyed) {
			return nil, common.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("%w: %w", common.ErrDecryptionFailed, err)
	}
	defer crypto.Zero(plain)
	records := []model.CredentialRecord{}
	if err := json.Unmarshal(plain, &records); err != nil {
		return nil, fmt.Errorf("%w: decode entries: %v", common.ErrDecryptionFailed, err)
	}
	return records, nil
}

// SaveAll сериализует коллекцию, шифрует её и перезаписывает ячейку одной операцией.
func (s *RecordStore) SaveAll(ctx context.Context, records []model.CredentialRecord, key *crypto.Key) error {
	if records == nil {
		records = []model.CredentialRecord{}
	}
	plain, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	defer crypto.Zero(plain)
	blob, err := crypto.Encrypt(plain, key)
	if err != nil {
		if errors.Is(err, common.ErrKeyDestroyed) {
			return common.ErrNotAuthenticated
		}
		return fmt.Errorf("encrypt entries: %w", err)
	}
	if err := s.slots.Set(ctx, EntriesSlot, []byte(blob)); err != nil {
		return fmt.Errorf("save entries: %w", err)
	}
	return nil
}

// Add добавляет запись. Пустой ID заменяется на UUID, время создания и
// изменения выставляется текущим.
func (s *RecordStore) Add(ctx context.Context, rec model.CredentialRecord, key *crypto.Key) (model.CredentialRecord, error) {
	if err := rec.Validate(); err != nil {
		return model.CredentialRecord{}, err
	}
	records, err := s.LoadAll(ctx, key)
	if err != nil {
		return model.CredentialRecord{}, err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if indexOf(records, rec.ID) >= 0 {
		return model.CredentialRecord{}, fmt.Errorf("%w: %s", common.ErrAlreadyExists, rec.ID)
	}
	now := s.nowMillis()
	rec.CreatedAt, rec.UpdatedAt = now, now
	records = append(records, rec)
	if err := s.SaveAll(ctx, records, key); err != nil {
		return model.CredentialRecord{}, err
	}
	return rec, nil
}

// Update заменяет запись с тем же ID. ID и CreatedAt берутся из хранимой записи,
// UpdatedAt не уменьшается и не меньше CreatedAt.
func (s *RecordStore) Update(ctx context.Context, rec model.CredentialRecord, key *crypto.Key) (model.CredentialRecord, error) {
	if err := rec.Validate(); err != nil {
		return model.CredentialRecord{}, err
	}
	records, err := s.LoadAll(ctx, key)
	if err != nil {
		return model.CredentialRecord{}, err
	}
	i := indexOf(records, rec.ID)
	if i < 0 {
		return model.CredentialRecord{}, fmt.Errorf("%w: %s", common.ErrNotFound, rec.ID)
	}
	prev := records[i]
	rec.CreatedAt = prev.CreatedAt
	rec.UpdatedAt = max(s.nowMillis(), prev.UpdatedAt, prev.CreatedAt)
	records[i] = rec
	if err := s.SaveAll(ctx, records, key); err != nil {
		return model.CredentialRecord{}, err
	}
	return rec, nil
}

// Delete удаляет запись по ID. Отсутствующий ID — no-op без записи в хранилище.
func (s *RecordStore) Delete(ctx context.Context, id string, key *crypto.Key) error {
	records, err := s.LoadAll(ctx, key)
	if err != nil {
		return err
	}
	i := indexOf(records, id)
	if i < 0 {
		return nil
	}
	records = append(records[:i], records[i+1:]...)
	return s.SaveAll(ctx, records, key)
}

// Get возвращает одну запись по ID.
func (s *RecordStore) Get(ctx context.Context, id string, key *crypto.Key) (model.CredentialRecord, error) {
	records, err := s.LoadAll(ctx, key)
	if err != nil {
		return model.CredentialRecord{}, err
	}
	i := indexOf(records, id)
	if i < 0 {
		return model.CredentialRecord{}, fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}
	return records[i], nil
}

// Filter — параметры поиска по записям.
type Filter struct {
	// Query ищется без учёта регистра в title, username, url и notes.
	Query string
	// Category ограничивает выборку; пустое значение — все категории.
	Category model.Category
}

func (f Filter) match(r model.CredentialRecord) bool {
	if f.Category != "" && r.EffectiveCategory() != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	for _, field := range []string{r.Title, r.Username, r.URL, r.Notes} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Search возвращает записи, подходящие под фильтр, отсортированные по title.
func (s *RecordStore) Search(ctx context.Context, key *crypto.Key, f Filter) ([]model.CredentialRecord, error) {
	records, err := s.LoadAll(ctx, key)
	if err != nil {
		return nil, err
	}
	res := make([]model.CredentialRecord, 0, len(records))
	for _, r := range records {
		if f.match(r) {
			res = append(res, r)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return strings.ToLower(res[i].Title) < strings.ToLower(res[j].Title)
	})
	return res, nil
}

// Categories считает записи по категориям; запись без категории относится к Other.
func (s *RecordStore) Categories(ctx context.Context, key *crypto.Key) (map[model.Category]int, error) {
	records, err := s.LoadAll(ctx, key)
	if err != nil {
		return nil, err
	}
	counts := make(map[model.Category]int)
	for _, r := range records {
		counts[r.EffectiveCategory()]++
	}
	return counts, nil
}

// Export возвращает открытый снимок коллекции. Результат содержит пароли
// в открытом виде, вызывающий отвечает за его безопасное хранение.
func (s *RecordStore) Export(ctx context.Context, key *crypto.Key) (string, error) {
	records, err := s.LoadAll(ctx, key)
	if err != nil {
		return "", err
	}
	snap := model.Snapshot{
		Version:   model.SnapshotVersion,
		Timestamp: s.nowMillis(),
		Entries:   records,
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return string(b), nil
}

// Import разбирает снимок и полностью заменяет коллекцию (не слияние).
// При любой ошибке формата в хранилище ничего не пишется.
func (s *RecordStore) Import(ctx context.Context, data string, key *crypto.Key) (int, error) {
	records, err := s.parseSnapshot(data)
	if err != nil {
		return 0, err
	}
	if err := s.SaveAll(ctx, records, key); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *RecordStore) parseSnapshot(data string) ([]model.CredentialRecord, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &top); err != nil || top == nil {
		return nil, fmt.Errorf("%w: top-level value must be an object", common.ErrInvalidFormat)
	}
	raw, ok := top["entries"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, fmt.Errorf("%w: entries must be an array", common.ErrInvalidFormat)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidFormat, err)
	}

	now := s.nowMillis()
	records := make([]model.CredentialRecord, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if !bytes.HasPrefix(bytes.TrimSpace(item), []byte("{")) {
			return nil, fmt.Errorf("%w: entry %d must be an object", common.ErrInvalidFormat, i)
		}
		r := &records[i]
		if err := json.Unmarshal(item, r); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", common.ErrInvalidFormat, i, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", common.ErrInvalidFormat, i, err)
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", common.ErrInvalidFormat, r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.CreatedAt == 0 {
			r.CreatedAt = now
		}
		if r.UpdatedAt < r.CreatedAt {
			r.UpdatedAt = r.CreatedAt
		}
	}
	return records, nil
}

func indexOf(records []model.CredentialRecord, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
