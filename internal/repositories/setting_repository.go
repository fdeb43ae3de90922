package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khunmostz/Repair-Management-System/internal/models"
)

type SettingRepository struct {
	DB *pgxpool.Pool
}

func NewSettingRepository(db *pgxpool.Pool) *SettingRepository {
	return &SettingRepository{DB: db}
}

// Get returns the raw stored value for a key.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRow(ctx,
		`SELECT value FROM settings WHERE key=$1`, key).Scan(&value)
	if err != nil {
		return "", mapNoRows(err)
	}
	return value, nil
}

// Set upserts a key/value pair.
func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO settings(key, value) VALUES($1, $2)
         ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=CURRENT_TIMESTAMP`,
		key, value)
	return err
}

// All returns every stored setting row.
func (r *SettingRepository) All(ctx context.Context) ([]*models.Setting, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*models.Setting
	for rows.Next() {
		var s models.Setting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}
