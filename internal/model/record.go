package model

import (
	"fmt"
	"strings"

	"PassKeeper/internal/common"
)

// Category — категория записи хранилища.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategorySocial   Category = "Social"
	CategoryFinance  Category = "Finance"
	CategoryOther    Category = "Other"
)

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategorySocial, CategoryFinance, CategoryOther}
}

// ParseCategory принимает название категории без учёта регистра. Пустая строка допустима.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, c := range Categories() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown category %q", common.ErrInvalidRecord, s)
}

// Valid reports whether c is empty or one of the known categories.
func (c Category) Valid() bool {
	if c == "" {
		return true
	}
	for _, k := range Categories() {
		if c == k {
			return true
		}
	}
	return false
}

// CredentialRecord — запись с учётными данными. Хранится только в зашифрованном виде
// как часть общего JSON-массива. Время — миллисекунды Unix.
type CredentialRecord struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	URL       string   `json:"url,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Category  Category `json:"category,omitempty"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}

// Validate проверяет поля, которые задаёт пользователь.
func (r CredentialRecord) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrInvalidRecord)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", common.ErrInvalidRecord, r.Category)
	}
	return nil
}

// EffectiveCategory возвращает Other для записей без категории.
func (r CredentialRecord) EffectiveCategory() Category {
	if r.Category == "" {
		return CategoryOther
	}
	return r.Category
}
