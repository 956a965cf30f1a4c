// Package strength оценивает стойкость пароля по простым эвристикам (шкала 0–8).
package strength

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxScore — максимальная оценка.
const MaxScore = 8

// Result — результат оценки пароля.
type Result struct {
	Score    int      `json:"score"`
	Label    string   `json:"label"`
	Feedback []string `json:"feedback"`
}

var (
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	symbolRe  = regexp.MustCompile(`[^a-zA-Z0-9]`)
	patternRe = regexp.MustCompile(`(?i)123|abc|qwe|password|admin`)
)

// Evaluate считает оценку и подсказки для пароля.
func Evaluate(password string) Result {
	score := 0
	feedback := []string{}
	n := utf8.RuneCountInString(password)

	if n >= 8 {
		score++
	} else {
		feedback = append(feedback, "Use at least 8 characters")
	}
	if n >= 12 {
		score++
	} else if n >= 8 {
		feedback = append(feedback, "Consider using 12+ characters for better security")
	}

	checks := []struct {
		ok   bool
		hint string
	}{
		{lowerRe.MatchString(password), "Include lowercase letters"},
		{upperRe.MatchString(password), "Include uppercase letters"},
		{digitRe.MatchString(password), "Include numbers"},
		{symbolRe.MatchString(password), "Include special characters"},
		{!hasTripleRepeat(password), "Avoid repeating characters"},
		{!patternRe.MatchString(password), "Avoid common patterns"},
	}
	for _, c := range checks {
		if c.ok {
			score++
		} else {
			feedback = append(feedback, c.hint)
		}
	}

	return Result{Score: score, Label: label(score), Feedback: feedback}
}

// hasTripleRepeat — аналог (.)\1{2,}; в RE2 обратных ссылок нет.
func hasTripleRepeat(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if run > 0 && r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= 3 {
			return true
		}
	}
	return false
}

func label(score int) string {
	switch {
	case score <= 2:
		return "Very Weak"
	case score <= 4:
		return "Weak"
	case score <= 6:
		return "Fair"
	case score <= 7:
		return "Good"
	default:
		return "Strong"
	}
}

// String форматирует результат для CLI.
func (r Result) String() string {
	s := r.Label
	if len(r.Feedback) > 0 {
		s += " (" + strings.Join(r.Feedback, "; ") + ")"
	}
	return s
}
