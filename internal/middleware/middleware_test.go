package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"fynix/internal/domain"
	"fynix/internal/middleware"
	"fynix/internal/service"
	"fynix/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	tenantID, userID := uuid.New(), uuid.New()
	mockAuth.On("ValidateToken", "valid-token").Return(&service.Claims{
		TenantID: tenantID,
		UserID:   userID,
		Email:    "ops@fynix.test",
		Role:     domain.RoleManager,
	}, nil)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(mockAuth, nil))
	r.GET("/test", func(c *gin.Context) {
		tid, _ := middleware.GetTenantID(c)
		uid, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"tenant_id": tid, "user_id": uid, "role": middleware.GetRole(c)})
	})

	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := serve(r, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, tenantID.String(), resp["tenant_id"])
	assert.Equal(t, userID.String(), resp["user_id"])
	assert.Equal(t, "manager", resp["role"])
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(new(mocks.MockAuthService), nil))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Basic abc")
	w := serve(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "expired").Return(nil, domain.ErrUnauthorized)
	core, logs := observer.New(zap.DebugLevel)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(mockAuth, zap.New(core)))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer expired")
	w := serve(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("token rejected").Len())
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"manager", http.StatusOK},
		{"viewer", http.StatusForbidden},
		{"member", http.StatusForbidden},
		{"", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.role != "" {
					c.Set(middleware.ContextKeyRole, tt.role)
				}
				c.Next()
			})
			r.Use(middleware.RequireRole(domain.RoleAdmin, domain.RoleManager))
			r.POST("/send", func(c *gin.Context) { c.Status(http.StatusOK) })

			req, _ := http.NewRequest(http.MethodPost, "/send", http.NoBody)
			assert.Equal(t, tt.want, serve(r, req).Code)
		})
	}
}

func TestGetTenantID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := middleware.GetTenantID(c)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRequestID_PropagatesHeader(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.ContextKeyRequestID)) })

	req, _ := http.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set("X-Request-ID", "req-42")
	w := serve(r, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-42", w.Body.String())

	req2, _ := http.NewRequest(http.MethodGet, "/x", http.NoBody)
	w2 := serve(r, req2)
	_, err := uuid.Parse(w2.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req, _ := http.NewRequest(http.MethodGet, "/ok", http.NoBody)
	serve(r, req)
	req, _ = http.NewRequest(http.MethodGet, "/missing", http.NoBody)
	serve(r, req)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "/missing", entries[1].ContextMap()["path"])
}

func TestRecovery_Returns500(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(middleware.Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	req, _ := http.NewRequest(http.MethodGet, "/panic", http.NoBody)
	w := serve(r, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest(http.MethodOptions, "/x", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")

	req, _ = http.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set("Origin", "https://evil.test")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardSubdomain(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"https://*.fynix.digital"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		origin  string
		allowed bool
	}{
		{"https://app.fynix.digital", true},
		{"https://a.b.fynix.digital", false},
		{"https://evilfynix.digital", false},
		{"http://app.fynix.digital", false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/x", http.NoBody)
			req.Header.Set("Origin", tt.origin)
			got := serve(r, req).Header().Get("Access-Control-Allow-Origin")
			if tt.allowed {
				assert.Equal(t, tt.origin, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}
