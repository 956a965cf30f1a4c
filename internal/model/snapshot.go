package model

// SnapshotVersion — версия формата экспорта.
const SnapshotVersion = "1.0"

// Snapshot — открытый (незашифрованный) формат экспорта/импорта.
type Snapshot struct {
	Version   string             `json:"version"`
	Timestamp int64              `json:"timestamp"`
	Entries   []CredentialRecord `json:"entries"`
}
