package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"borntoday-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": " 203.0.113.9 , 10.0.0.2"}, "10.0.0.2:5000", "203.0.113.9"},
		{"bad forwarded falls through", map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "198.51.100.4"}, "10.0.0.2:5000", "198.51.100.4"},
		{"socket address", nil, "192.0.2.1:1234", "192.0.2.1"},
		{"ipv6 socket", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"garbage", nil, "nowhere", "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, utils.ExtractClientIP(c))
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	for _, ip := range []string{"10.1.2.3", "172.16.0.1", "192.168.1.1", "127.0.0.1", "::1", "fd00::1"} {
		assert.True(t, utils.IsPrivateIP(ip), ip)
	}
	for _, ip := range []string{"8.8.8.8", "172.32.0.1", "2001:db8::1", "not-an-ip"} {
		assert.False(t, utils.IsPrivateIP(ip), ip)
	}
}
