// Package generator генерирует случайные пароли, PIN-коды и парольные фразы.
// Используется только пользовательскими интерфейсами, ядро хранилища его не вызывает.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"PassKeeper/internal/common"
)

const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Numbers   = "0123456789"
	Symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// MaxLength ограничивает длину, чтобы API не генерировал мегабайты.
	MaxLength = 1024
)

// ErrEmptyCharset возвращается, если не выбран ни один класс символов.
var ErrEmptyCharset = errors.New("at least one character type must be selected")

// Options — параметры генерации пароля.
type Options struct {
	Length           int  `json:"length"`
	IncludeUppercase bool `json:"includeUppercase"`
	IncludeLowercase bool `json:"includeLowercase"`
	IncludeNumbers   bool `json:"includeNumbers"`
	IncludeSymbols   bool `json:"includeSymbols"`
}

// DefaultOptions — 16 символов всех классов.
func DefaultOptions() Options {
	return Options{Length: 16, IncludeUppercase: true, IncludeLowercase: true, IncludeNumbers: true, IncludeSymbols: true}
}

var randReader io.Reader = rand.Reader

func randIndex(n int) (int, error) {
	v, err := rand.Int(randReader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrCryptoUnavailable, err)
	}
	return int(v.Int64()), nil
}

// Password генерирует пароль из выбранных классов символов без смещения по модулю.
func Password(opts Options) (string, error) {
	var charset strings.Builder
	if opts.IncludeUppercase {
		charset.WriteString(Uppercase)
	}
	if opts.IncludeLowercase {
		charset.WriteString(Lowercase)
	}
	if opts.IncludeNumbers {
		charset.WriteString(Numbers)
	}
	if opts.IncludeSymbols {
		charset.WriteString(Symbols)
	}
	cs := charset.String()
	if cs == "" {
		return "", ErrEmptyCharset
	}
	if opts.Length <= 0 || opts.Length > MaxLength {
		return "", fmt.Errorf("length must be between 1 and %d", MaxLength)
	}
	out := make([]byte, opts.Length)
	for i := range out {
		idx, err := randIndex(len(cs))
		if err != nil {
			return "", err
		}
		out[i] = cs[idx]
	}
	return string(out), nil
}

// Secure — пароль по умолчанию (16 символов, все классы).
func Secure() (string, error) {
	return Password(DefaultOptions())
}

// PIN генерирует цифровой код; length <= 0 означает 6.
func PIN(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	return Password(Options{Length: length, IncludeNumbers: true})
}

var words = []string{
	"apple", "brave", "chair", "dance", "eagle", "flame", "grace", "house",
	"image", "juice", "knife", "light", "music", "night", "ocean", "peace",
	"quiet", "river", "stone", "table", "unity", "voice", "water", "youth",
	"zebra", "angel", "beach", "cloud", "dream", "earth", "field", "green",
	"happy", "island", "jewel", "magic", "noble", "power", "royal", "smile",
	"trust", "value", "world", "young", "bright", "clear", "fresh", "grand",
}

// Passphrase собирает фразу из wordCount разных слов с заглавной буквы через дефис.
// wordCount <= 0 означает 4.
func Passphrase(wordCount int) (string, error) {
	if wordCount <= 0 {
		wordCount = 4
	}
	if wordCount > len(words) {
		return "", fmt.Errorf("word count must be at most %d", len(words))
	}
	pool := append([]string(nil), words...)
	selected := make([]string, 0, wordCount)
	for len(selected) < wordCount {
		idx, err := randIndex(len(pool))
		if err != nil {
			return "", err
		}
		w := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		selected = append(selected, strings.ToUpper(w[:1])+w[1:])
	}
	return strings.Join(selected, "-"), nil
}
