package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/pkg/helpers"
)

func newAuthRouter(jwt *helpers.JWTManager, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{Auth(jwt)}
	if role != "" {
		handlers = append(handlers, RequireRole(role))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":   c.GetInt64(CtxUserIDKey),
			"username": c.GetString(CtxUsernameKey),
			"role":     c.GetString(CtxRoleKey),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newAuthRouter(jwt, "")

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	other := helpers.NewJWTManager("other-secret", time.Hour)
	token, _, err := other.GenerateToken(1, "alice", entity.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := newAuthRouter(jwt, "")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuthPassesClaimsToHandler(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwt.GenerateToken(7, "alice", entity.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	r := newAuthRouter(jwt, "")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newAuthRouter(jwt, entity.RoleAdmin)

	userToken, _, err := jwt.GenerateToken(1, "alice", entity.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("user role status = %d, want 403", w.Code)
	}

	adminToken, _, err := jwt.GenerateToken(2, "root", entity.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin role status = %d, want 200", w.Code)
	}
}
