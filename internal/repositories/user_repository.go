package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khunmostz/Repair-Management-System/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.Role == "" {
		u.Role = models.RoleRequester // Default role
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(username, email, password_hash, full_name, role, phone_number, telegram_id)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.Role, u.PhoneNumber, u.TelegramID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, email, password_hash, full_name, role, phone_number, telegram_id, last_login, created_at, updated_at
         FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.Role, &user.PhoneNumber, &user.TelegramID,
		&user.LastLogin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, username, email, password_hash, full_name, role, phone_number, telegram_id, last_login, created_at, updated_at
         FROM users WHERE username=$1`, username)

	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.Role, &user.PhoneNumber, &user.TelegramID,
		&user.LastLogin, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &user, nil
}

// ExistsByUsernameOrEmail reports whether any user holds either value.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username=$1 OR email=$2)`,
		username, email).Scan(&exists)
	return exists, err
}

// List returns all users
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, username, email, full_name, role, phone_number, telegram_id, last_login, created_at, updated_at
         FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
			&user.Role, &user.PhoneNumber, &user.TelegramID, &user.LastLogin,
			&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// Update updates an existing user. An empty PasswordHash keeps the
// stored password.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	if u.PasswordHash != "" {
		_, err := r.DB.Exec(ctx,
			`UPDATE users SET username=$1, email=$2, password_hash=$3, full_name=$4, role=$5, phone_number=$6, telegram_id=$7, updated_at=CURRENT_TIMESTAMP
			 WHERE id=$8`,
			u.Username, u.Email, u.PasswordHash, u.FullName, u.Role, u.PhoneNumber, u.TelegramID, u.ID)
		return err
	}

	_, err := r.DB.Exec(ctx,
		`UPDATE users SET username=$1, email=$2, full_name=$3, role=$4, phone_number=$5, telegram_id=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		u.Username, u.Email, u.FullName, u.Role, u.PhoneNumber, u.TelegramID, u.ID)
	return err
}

// TouchLastLogin stamps the last successful login time.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET last_login=CURRENT_TIMESTAMP WHERE id=$1`, id)
	return err
}

// Delete deletes a user
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
