package utils

import (
	"net"
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

const fallbackIP = "127.0.0.1"

// ExtractClientIP resolves the visitor address behind the reverse proxy.
// The first X-Forwarded-For hop wins, then X-Real-IP, then the socket address.
func ExtractClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip, ok := parseIP(first); ok {
			return ip
		}
	}
	if ip, ok := parseIP(c.GetHeader("X-Real-IP")); ok {
		return ip
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	if ip, ok := parseIP(host); ok {
		return ip
	}
	return fallbackIP
}

// parseIP returns the canonical form of raw.
func parseIP(raw string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}

// IsPrivateIP reports loopback, RFC 1918 and IPv6 unique local addresses.
// The request logger uses it to tag internal traffic such as health probes.
func IsPrivateIP(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	return addr.IsLoopback() || addr.IsPrivate()
}
