// Файл: internal/api/middleware.go
package api

import (
	"crypto/hmac"
	"log"
	"net/http"
	"strings"
)

// AuthMiddleware проверяет токен административного API.
// Токен передается в заголовке Authorization: Bearer <token>.
// Пустой сконфигурированный токен закрывает API полностью.
func AuthMiddleware(adminToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminToken == "" {
				http.Error(w, "Service Unavailable: admin API is not configured", http.StatusServiceUnavailable)
				return
			}

			authHeader := r.Header.Get("Authorization")
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				// Префикса "Bearer " не было.
				http.Error(w, "Unauthorized: Missing bearer token", http.StatusUnauthorized)
				return
			}

			// Сравнение за постоянное время, токен в логи не попадает.
			if !hmac.Equal([]byte(token), []byte(adminToken)) {
				log.Printf("AuthMiddleware: отклонен запрос %s %s с неверным токеном.", r.Method, r.URL.Path)
				http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
