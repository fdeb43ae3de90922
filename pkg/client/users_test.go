package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTechniciansIncludesAdmins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]User{
			{ID: 1, FullName: "Root", Role: RoleAdmin},
			{ID: 2, FullName: "Tess", Role: RoleTechnician},
			{ID: 3, FullName: "Somchai", Role: RoleRequester},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	pool, err := c.Technicians(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(pool) != 2 {
		t.Fatalf("pool = %+v, want admin and technician", pool)
	}
	for _, u := range pool {
		if u.Role == RoleRequester {
			t.Fatalf("requester %q in the assignment pool", u.FullName)
		}
	}
}

func TestCreateUserRequiresCredentials(t *testing.T) {
	c := New("http://unused.invalid")

	if _, err := c.CreateUser(context.Background(), CreateUser{Password: "x"}); err == nil {
		t.Fatal("expected error for missing username")
	}
	if _, err := c.CreateUser(context.Background(), CreateUser{Username: "u"}); err == nil {
		t.Fatal("expected error for missing password")
	}
}

func TestSetPasswordIgnoresEmpty(t *testing.T) {
	var u UpdateUser
	u.SetPassword("")
	if u.Password != nil {
		t.Fatal("empty password included in payload")
	}
	u.SetPassword("secret1")
	if u.Password == nil || *u.Password != "secret1" {
		t.Fatalf("password = %v", u.Password)
	}
}
