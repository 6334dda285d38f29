// Package middleware HTTP middleware для роутера
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

type contextKey string

const userIDKey contextKey = "userID"

// HeaderUserID заголовок с ID пользователя, проставляется API gateway
// после проверки токена
const HeaderUserID = "X-User-ID"

// Auth извлекает ID пользователя из заголовка X-User-ID и кладёт его в
// контекст запроса. Запросы без валидного заголовка отклоняются с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			respondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			respondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// respondUnauthorized локальная версия ответа 401, чтобы не тянуть
// зависимость на пакет handlers из middleware
func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
}
