package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		forwarded string
		remote    string
		want      string
	}{
		{forwarded: "203.0.113.1", remote: "198.51.100.10:1234", want: "203.0.113.1"},
		{forwarded: " 203.0.113.1 , 198.51.100.2 ", remote: "198.51.100.10:1234", want: "203.0.113.1"},
		{forwarded: "unknown, 203.0.113.7", remote: "198.51.100.10:1234", want: "203.0.113.7"},
		{forwarded: "invalid", remote: "198.51.100.10:1234", want: "198.51.100.10"},
		{remote: "198.51.100.10:1234", want: "198.51.100.10"},
		{forwarded: "2001:db8::1", remote: net.JoinHostPort("2001:db8::2", "443"), want: "2001:db8::1"},
		{forwarded: "invalid", remote: net.JoinHostPort("2001:db8::2", "443"), want: "2001:db8::2"},
		{remote: "203.0.113.1", want: "203.0.113.1"},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tc.remote
		if tc.forwarded != "" {
			req.Header.Set("X-Forwarded-For", tc.forwarded)
		}
		if got := clientIP(req); got != tc.want {
			t.Fatalf("clientIP(xff=%q, remote=%q) = %q, want %q", tc.forwarded, tc.remote, got, tc.want)
		}
	}
}
