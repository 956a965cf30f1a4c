package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName — имя cookie с токеном сессии.
const CookieName = "auth_token"

// TokenTTL — верхняя граница жизни токена; фактически сессия заканчивается
// раньше, при выходе или автоблокировке.
const TokenTTL = 12 * time.Hour

type ctxKey string

const sessionIDKey ctxKey = "session_id"

// Claims — содержимое JWT. SessionID привязывает токен к конкретному входу.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// BuildToken подписывает токен сессии HS256.
func BuildToken(sessionID, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		SessionID: sessionID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия и возвращает SessionID.
func ParseToken(tokenString, secret string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.SessionID, nil
}

// SetSessionCookie выставляет HttpOnly cookie с токеном сессии.
func SetSessionCookie(w http.ResponseWriter, sessionID, secret string) error {
	token, err := BuildToken(sessionID, secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(TokenTTL),
	})
	return nil
}

// ClearSessionCookie удаляет cookie сессии у клиента.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

// WithAuth кладёт SessionID из валидного токена в контекст.
// Запросы без токена или с невалидным токеном проходят анонимно.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			sid, err := ParseToken(c.Value, secret)
			if err != nil {
				log.Debugw("rejected session token", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), sessionIDKey, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionIDFromContext возвращает SessionID, положенный WithAuth.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sessionIDKey).(string)
	return sid, ok && sid != ""
}

// RequireSession пропускает запрос, только если SessionID из токена совпадает
// с текущим. После выхода или автоблокировки current меняется, и старые
// токены перестают приниматься.
func RequireSession(current func() string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, ok := GetSessionIDFromContext(r.Context())
			if !ok || sid != current() {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
