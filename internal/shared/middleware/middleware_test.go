package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"borntoday-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subject":    c.GetString(ContextKeySubject),
			"request_id": c.GetString(ContextKeyRequestID),
			"client_ip":  ClientIPFromContext(c.Request.Context()),
		})
	})
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func do(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	admin, _, err := manager.GenerateAccessToken("root", jwt.RoleAdmin)
	require.NoError(t, err)
	other, _, err := jwt.NewManager("other-secret", time.Hour).GenerateAccessToken("root", jwt.RoleAdmin)
	require.NoError(t, err)

	r := newRouter(AuthMiddleware(manager))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + admin, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"foreign signature", "Bearer " + other, http.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + admin, http.StatusOK},
		{"scheme is case insensitive", "bearer " + admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := do(r, "/", headers)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"subject":"root"`)
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	admin, _, err := manager.GenerateAccessToken("root", jwt.RoleAdmin)
	require.NoError(t, err)
	user, _, err := manager.GenerateAccessToken("guest", "viewer")
	require.NoError(t, err)

	r := newRouter(AuthMiddleware(manager), AdminMiddleware())

	assert.Equal(t, http.StatusOK, do(r, "/", map[string]string{"Authorization": "Bearer " + admin}).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "/", map[string]string{"Authorization": "Bearer " + user}).Code)
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := do(r, "/", map[string]string{HeaderRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Contains(t, w.Body.String(), `"request_id":"abc-123"`)

	w = do(r, "/", nil)
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)

	w = do(r, "/", map[string]string{HeaderRequestID: strings.Repeat("x", 65)})
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

func TestClientIPMiddleware(t *testing.T) {
	r := newRouter(ClientIPMiddleware())

	w := do(r, "/", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})
	assert.Contains(t, w.Body.String(), `"client_ip":"203.0.113.7"`)

	w = do(r, "/", map[string]string{"X-Real-IP": "198.51.100.2"})
	assert.Contains(t, w.Body.String(), `"client_ip":"198.51.100.2"`)
}

func TestRecovery(t *testing.T) {
	r := newRouter(Recovery())

	w := do(r, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"SYS_001"`)
}

func TestMetricsAndLogger_PassThrough(t *testing.T) {
	r := newRouter(RequestID(), Logger(), Metrics())

	assert.Equal(t, http.StatusOK, do(r, "/", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, "/missing", nil).Code)
}
