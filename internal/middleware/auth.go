package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey int

const userIDKey ctxKey = iota

// authCookieName — имя cookie с подписанным токеном авторизации
const authCookieName = "auth_token"

// claims — полезная нагрузка токена: только id пользователя
type claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// SetLoginCookie выписывает cookie авторизации для пользователя.
// remember=false даёт сессионную cookie, true — долгоживущую.
func SetLoginCookie(w http.ResponseWriter, userID int64, secret string, remember ...bool) error {
	exp := time.Now().Add(24 * time.Hour)
	long := len(remember) > 0 && remember[0]
	if long {
		exp = time.Now().Add(30 * 24 * time.Hour)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
		UserID:           userID,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return err
	}

	c := &http.Cookie{
		Name:     authCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if long {
		c.Expires = exp
	}
	http.SetCookie(w, c)
	return nil
}

// ClearLoginCookie гасит cookie авторизации (выход из профиля)
func ClearLoginCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// WithAuth достаёт id пользователя из cookie и кладёт его в контекст запроса.
// Анонимные и невалидные запросы пропускаются дальше без user_id.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(authCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			cl := &claims{}
			token, err := jwt.ParseWithClaims(c.Value, cl, func(t *jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, cl.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext возвращает id пользователя, положенный WithAuth
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// RequireAuth закрывает страницу от анонимов: редирект на /login
// с параметром next, чтобы после входа вернуть человека обратно.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDString — строковый id текущего пользователя для логов
func UserIDString(ctx context.Context) string {
	if id, ok := GetUserIDFromContext(ctx); ok {
		return strconv.FormatInt(id, 10)
	}
	return "anonymous"
}
