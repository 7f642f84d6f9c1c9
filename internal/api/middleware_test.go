package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func authProbe(token string, header string) int {
	handler := AuthMiddleware(token)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/admin/projects", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestAuthMiddleware(t *testing.T) {
	assert.Equal(t, http.StatusOK, authProbe("secret", "Bearer secret"))
	assert.Equal(t, http.StatusUnauthorized, authProbe("secret", "Bearer wrong"))
	assert.Equal(t, http.StatusUnauthorized, authProbe("secret", "secret"))
	assert.Equal(t, http.StatusUnauthorized, authProbe("secret", ""))
	// Несконфигурированный токен закрывает API полностью.
	assert.Equal(t, http.StatusServiceUnavailable, authProbe("", "Bearer anything"))
}
