package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devconnect/backend/internal/config"
	"github.com/devconnect/backend/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

func signedToken(t *testing.T, secret, subject string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func protectedRouter(cfg *config.Config, sawID *int64) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.AuthMiddleware(cfg))
	r.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		id, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "no identity", http.StatusInternalServerError)
			return
		}
		*sawID = id
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	return r
}

func request(r *mux.Router, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func deniedMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || len(body.Errors) != 1 {
		t.Fatalf("unexpected body %q: %v", rec.Body.String(), err)
	}
	return body.Errors[0].Msg
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret"}

	t.Run("missing token", func(t *testing.T) {
		var sawID int64
		rec := request(protectedRouter(cfg, &sawID), "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
		if msg := deniedMsg(t, rec); msg != "No token, authorization denied" {
			t.Errorf("msg = %q", msg)
		}
	})

	t.Run("valid token attaches subject", func(t *testing.T) {
		var sawID int64
		token := signedToken(t, "testsecret", "42", time.Hour)
		rec := request(protectedRouter(cfg, &sawID), token)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d body %s", rec.Code, rec.Body)
		}
		if sawID != 42 {
			t.Errorf("user id = %d, want 42", sawID)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		var sawID int64
		token := signedToken(t, "testsecret", "42", -time.Minute)
		rec := request(protectedRouter(cfg, &sawID), token)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
		if msg := deniedMsg(t, rec); msg != "Token is not valid" {
			t.Errorf("msg = %q", msg)
		}
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		var sawID int64
		token := signedToken(t, "othersecret", "42", time.Hour)
		rec := request(protectedRouter(cfg, &sawID), token)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
	})

	t.Run("non-numeric subject rejected", func(t *testing.T) {
		var sawID int64
		token := signedToken(t, "testsecret", "not-a-number", time.Hour)
		rec := request(protectedRouter(cfg, &sawID), token)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
	})
}
