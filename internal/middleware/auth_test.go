package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func authProbe() (http.Handler, *int64, *bool) {
	var uid int64
	var ok bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return h, &uid, &ok
}

func TestWithAuth_ValidToken(t *testing.T) {
	const secret = "test-secret"
	token, err := BuildJWT(42, secret)
	if err != nil {
		t.Fatalf("BuildJWT: %v", err)
	}

	probe, uid, ok := authProbe()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	WithAuth(secret)(probe).ServeHTTP(rec, req)

	if !*ok || *uid != 42 {
		t.Fatalf("want user_id=42 in context, got uid=%d ok=%v", *uid, *ok)
	}
}

func TestWithAuth_MissingHeader(t *testing.T) {
	probe, _, ok := authProbe()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	WithAuth("test-secret")(probe).ServeHTTP(rec, req)

	// запрос проходит, но анонимно
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous request must pass through, got %d", rec.Code)
	}
	if *ok {
		t.Fatalf("no token must mean no user_id in context")
	}
}

func TestWithAuth_BadToken(t *testing.T) {
	for name, header := range map[string]string{
		"garbage":      "Bearer not-a-jwt",
		"wrong scheme": "Basic abcdef",
	} {
		probe, _, ok := authProbe()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		WithAuth("test-secret")(probe).ServeHTTP(rec, req)
		if *ok {
			t.Fatalf("%s: invalid token must stay anonymous", name)
		}
	}
}

func TestWithAuth_WrongSecret(t *testing.T) {
	token, err := BuildJWT(42, "secret-a")
	if err != nil {
		t.Fatal(err)
	}
	probe, _, ok := authProbe()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	WithAuth("secret-b")(probe).ServeHTTP(rec, req)
	if *ok {
		t.Fatalf("token signed with another secret must stay anonymous")
	}
}
