package model

import "time"

// Slot — именованная ячейка локального key-value хранилища (модель GORM).
type Slot struct {
	Key       string    `gorm:"primaryKey;size:128"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName фиксирует имя таблицы, общее для всех SQL-бэкендов.
func (Slot) TableName() string { return "slots" }
