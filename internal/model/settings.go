package model

// MasterSettings — одноразовая запись настройки хранилища.
// KDFIterations пишется при настройке; отсутствие поля означает минимум PBKDF2.
type MasterSettings struct {
	MasterPasswordHash string `json:"masterPasswordHash"`
	Salt               string `json:"salt"`
	IsSetup            bool   `json:"isSetup"`
	KDFIterations      int    `json:"kdfIterations,omitempty"`
}
