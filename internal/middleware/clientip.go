package middleware

import (
	"net"
	"net/http"
	"strings"
)

// clientIP returns the first valid address in X-Forwarded-For, else the
// host part of RemoteAddr.
func clientIP(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		if ip := strings.TrimSpace(part); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
