package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"power-store/utils"
)

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := utils.NewTokenIssuer("secret", time.Hour)
	r := gin.New()
	r.GET("/me", Auth(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, strconv.FormatInt(PlayerID(c), 10))
	})

	good, _ := tokens.Generate(7)
	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"bad token", "Bearer nope", http.StatusUnauthorized, ""},
		{"ok", "Bearer " + good, http.StatusOK, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, w.Code)
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Fatalf("expected body %q, got %q", tt.body, w.Body.String())
			}
		})
	}
}
