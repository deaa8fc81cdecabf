package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

func TestSignAndVerifyJWT(t *testing.T) {
	token, err := SignJWT("secret", domain.UserProfile{Email: " A@X.com ", Name: "Andi", Locale: "id"}, time.Hour)
	if err != nil {
		t.Fatalf("SignJWT error: %v", err)
	}
	claims, err := VerifyJWT("secret", token)
	if err != nil {
		t.Fatalf("VerifyJWT error: %v", err)
	}
	if claims.Email != "a@x.com" || claims.Locale != "id" {
		t.Fatalf("claims = %+v", claims)
	}

	if _, err := VerifyJWT("other", token); err == nil {
		t.Fatal("expected signature error")
	}
	expired, _ := SignJWT("secret", domain.UserProfile{Email: "a@x.com"}, -time.Minute)
	if _, err := VerifyJWT("secret", expired); err == nil {
		t.Fatal("expected expiry error")
	}
	if _, err := SignJWT("", domain.UserProfile{Email: "a@x.com"}, time.Hour); err == nil {
		t.Fatal("expected error without secret")
	}
}

func TestIdentityMiddleware(t *testing.T) {
	valid, _ := SignJWT("secret", domain.UserProfile{Email: "a@x.com", Locale: "id"}, time.Hour)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     domain.Identity
		wantLocale string
	}{
		{name: "anonymous", wantStatus: http.StatusOK, wantID: "", wantLocale: "en"},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantID: "a@x.com", wantLocale: "id"},
		{name: "bad scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotID domain.Identity
			var gotLocale string
			h := Identity("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID = IdentityFromContext(r.Context())
				gotLocale = LocaleFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK && (gotID != tc.wantID || gotLocale != tc.wantLocale) {
				t.Fatalf("identity=%q locale=%q", gotID, gotLocale)
			}
		})
	}
}

func TestAdminToken(t *testing.T) {
	h := AdminToken("s3cret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	for header, want := range map[string]int{"": http.StatusUnauthorized, "nope": http.StatusUnauthorized, "s3cret": http.StatusNoContent} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if header != "" {
			req.Header.Set("X-Admin-Token", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("X-Admin-Token %q: status %d, want %d", header, rec.Code, want)
		}
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/edits", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("preflight status=%d headers=%v", rec.Code, rec.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unexpected CORS header for unknown origin")
	}
}
