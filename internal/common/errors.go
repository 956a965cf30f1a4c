// Package common содержит общие sentinel-ошибки хранилища паролей.
// Сравнивать их следует через errors.Is.
package common

import "errors"

var (
	// Криптография.
	ErrCryptoUnavailable    = errors.New("secure crypto primitives unavailable")
	ErrAuthenticationFailed = errors.New("ciphertext authentication failed")
	ErrKeyDestroyed         = errors.New("encryption key destroyed")

	// Сессия.
	ErrInvalidCredentials = errors.New("invalid master password")
	ErrNotAuthenticated   = errors.New("vault is locked")
	ErrNotSetUp           = errors.New("vault is not set up")
	ErrAlreadySetUp       = errors.New("vault is already set up")
	ErrPasswordTooShort   = errors.New("master password must be at least 8 characters long")
	ErrPasswordTooWeak    = errors.New("master password is too weak")

	// Хранилище записей.
	ErrDecryptionFailed = errors.New("failed to decrypt vault entries")
	ErrNotFound         = errors.New("entry not found")
	ErrAlreadyExists    = errors.New("entry already exists")
	ErrInvalidRecord    = errors.New("invalid entry")
	ErrInvalidFormat    = errors.New("invalid import data format")
)
