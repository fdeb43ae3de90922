package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestSessionTokenLifecycle(t *testing.T) {
	s := NewSession()

	if s.IsAuthenticated() {
		t.Fatal("new session reports authenticated")
	}

	if err := s.SetToken("abc"); err != nil {
		t.Fatal(err)
	}
	if !s.IsAuthenticated() {
		t.Fatal("authenticated = false after SetToken")
	}
	if s.Token() != "abc" {
		t.Fatalf("Token() = %q, want abc", s.Token())
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Fatal("authenticated = true after Clear")
	}
	if s.User() != nil {
		t.Fatal("user survived Clear")
	}
}

func TestSessionPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := LoadSession(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Fatal("missing file should yield empty session")
	}

	if err := s.SetUser(&User{ID: 1, Username: "alice", Role: RoleAdmin}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetToken("tok-123"); err != nil {
		t.Fatal(err)
	}

	restored, err := LoadSession(path)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Token() != "tok-123" {
		t.Fatalf("restored token = %q, want tok-123", restored.Token())
	}
	user := restored.User()
	if user == nil || user.Username != "alice" || user.Role != RoleAdmin {
		t.Fatalf("restored user = %+v", user)
	}

	// Clearing removes the file; a fresh load starts unauthenticated.
	if err := restored.Clear(); err != nil {
		t.Fatal(err)
	}
	again, err := LoadSession(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.IsAuthenticated() {
		t.Fatal("session survived Clear on disk")
	}
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Session().SetToken("abc"); err != nil {
		t.Fatal(err)
	}

	if _, err := c.ListRepairRequests(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer abc" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer abc")
	}

	// After clear, no header is sent.
	if err := c.Session().Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ListRepairRequests(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization after clear = %q, want empty", gotAuth)
	}
}

func TestUnauthorizedClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Invalid or expired token"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Session().SetToken("stale")
	c.Session().SetUser(&User{ID: 1})

	hookCalled := false
	c.Session().OnUnauthorized(func() { hookCalled = true })

	_, err := c.ListRepairRequests(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("err = %v, want 401 APIError", err)
	}
	if c.Session().IsAuthenticated() {
		t.Fatal("session still authenticated after 401")
	}
	if c.Session().User() != nil {
		t.Fatal("user survived 401")
	}
	if !hookCalled {
		t.Fatal("OnUnauthorized hook not invoked")
	}
}
