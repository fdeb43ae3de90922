package services

import (
	"context"
	"errors"
	"testing"

	"github.com/khunmostz/Repair-Management-System/internal/auth"
	"github.com/khunmostz/Repair-Management-System/internal/config"
	"github.com/khunmostz/Repair-Management-System/internal/models"
	"github.com/khunmostz/Repair-Management-System/internal/repositories"
)

type fakeUserStore struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	u.ID = f.nextID
	f.nextID++
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserStore) Get(ctx context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) List(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

// Update mirrors the real repository: an empty hash keeps the stored one.
func (f *fakeUserStore) Update(ctx context.Context, u *models.User) error {
	stored, ok := f.users[u.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	clone := *u
	if clone.PasswordHash == "" {
		clone.PasswordHash = stored.PasswordHash
	}
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserStore) TouchLastLogin(ctx context.Context, id int) error { return nil }

func (f *fakeUserStore) Delete(ctx context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func testJWTManager() *auth.JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "repair-system"
	return auth.NewJWTManager(cfg)
}

func TestRegisterDefaultsRole(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testJWTManager())

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "somchai",
		Password: "secret1",
		Email:    "somchai@example.com",
		FullName: "Somchai J",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.User.Role != models.RoleRequester {
		t.Fatalf("role = %s, want requester", resp.User.Role)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.PasswordHash == "secret1" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testJWTManager())

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "somchai",
		Password: "abc",
		Email:    "somchai@example.com",
		FullName: "Somchai J",
	})
	if err == nil {
		t.Fatal("expected error for short password")
	}
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testJWTManager())
	req := &models.RegisterRequest{
		Username: "somchai", Password: "secret1",
		Email: "somchai@example.com", FullName: "Somchai J",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(context.Background(), req); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testJWTManager())
	if _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "somchai", Password: "secret1",
		Email: "somchai@example.com", FullName: "Somchai J",
	}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Login(context.Background(), &models.LoginRequest{Username: "somchai", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(context.Background(), &models.LoginRequest{Username: "nobody", Password: "secret1"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testJWTManager())
	if _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "somchai", Password: "secret1",
		Email: "somchai@example.com", FullName: "Somchai J",
	}); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Username: "somchai", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" || resp.User.Username != "somchai" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUpdateUserKeepsPasswordWhenOmitted(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testJWTManager())
	created, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{
		Username: "tech1", Email: "tech1@example.com",
		Password: "secret1", FullName: "Tech One", Role: models.RoleTechnician,
	})
	if err != nil {
		t.Fatal(err)
	}
	originalHash := store.users[created.ID].PasswordHash

	name := "Tech Renamed"
	if _, err := svc.UpdateUser(context.Background(), created.ID, &models.UpdateUserRequest{FullName: &name}); err != nil {
		t.Fatal(err)
	}

	after := store.users[created.ID]
	if after.FullName != "Tech Renamed" {
		t.Fatalf("fullName = %q", after.FullName)
	}
	if after.PasswordHash != originalHash {
		t.Fatal("omitted password changed the stored hash")
	}

	// An explicit new password replaces the hash.
	newPass := "another1"
	if _, err := svc.UpdateUser(context.Background(), created.ID, &models.UpdateUserRequest{Password: &newPass}); err != nil {
		t.Fatal(err)
	}
	if store.users[created.ID].PasswordHash == originalHash {
		t.Fatal("new password did not change the stored hash")
	}
	if !auth.VerifyPassword(store.users[created.ID].PasswordHash, "another1") {
		t.Fatal("new password does not verify")
	}
}

func TestUpdateUserInvalidRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testJWTManager())
	created, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{
		Username: "tech1", Email: "tech1@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatal(err)
	}

	bad := models.UserRole("superuser")
	if _, err := svc.UpdateUser(context.Background(), created.ID, &models.UpdateUserRequest{Role: &bad}); err == nil {
		t.Fatal("expected invalid role error")
	}
}
