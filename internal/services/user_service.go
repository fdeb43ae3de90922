package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/khunmostz/Repair-Management-System/internal/auth"
	"github.com/khunmostz/Repair-Management-System/internal/cache"
	"github.com/khunmostz/Repair-Management-System/internal/models"
)

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	TouchLastLogin(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	Repo       UserStore
	JWTManager *auth.JWTManager
}

func NewUserService(repo UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, JWTManager: jwtManager}
}

// Register creates a new user and returns it with a fresh token.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Username == "" || req.Password == "" || req.Email == "" || req.FullName == "" {
		return nil, errors.New("username, password, email, and fullName are required")
	}
	if len(req.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}

	role := req.Role
	if role == "" {
		role = models.RoleRequester
	}
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}

	exists, err := s.Repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("username or email already exists")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		FullName:     req.FullName,
		Role:         role,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Login exchanges credentials for a token. Verified credentials are
// cached in Redis so repeated logins skip the bcrypt compare; the cache
// degrades to a plain bcrypt check when Redis is down.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.Repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if cachedID, ok := cache.GetCachedAuth(ctx, req.Username, req.Password); !ok || int(cachedID) != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
		cache.CacheAuth(ctx, req.Username, req.Password, int64(user.ID))
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	// Stamp last login; the login itself already succeeded.
	_ = s.Repo.TouchLastLogin(ctx, user.ID)

	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" {
		return nil, errors.New("username and email are required")
	}
	if req.Password == "" {
		return nil, errors.New("password is required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleRequester
	}
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		FullName:     req.FullName,
		Role:         role,
		PhoneNumber:  req.PhoneNumber,
		TelegramID:   req.TelegramID,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	cache.InvalidateUserCaches(ctx)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

// ListUsers returns all users, served from Redis when possible.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	if data, ok := cache.GetCached(ctx, cache.UserListKey); ok {
		var users []*models.User
		if err := json.Unmarshal(data, &users); err == nil {
			return users, nil
		}
	}

	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(users); err == nil {
		cache.SetCached(ctx, cache.UserListKey, data, time.Minute)
	}
	return users, nil
}

// UpdateUser applies a partial update. An omitted or empty password
// means "no change".
func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, errors.New("invalid role")
		}
		user.Role = *req.Role
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.TelegramID != nil {
		user.TelegramID = *req.TelegramID
	}

	user.PasswordHash = ""
	if req.Password != nil && *req.Password != "" {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	cache.InvalidateUserCaches(ctx)
	return s.Repo.Get(ctx, id)
}

// DeleteUser deletes a user
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateUserCaches(ctx)
	return nil
}
