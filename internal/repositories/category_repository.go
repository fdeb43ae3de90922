package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khunmostz/Repair-Management-System/internal/models"
)

type CategoryRepository struct {
	DB *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO categories(name, description)
         VALUES($1, $2)
         RETURNING id, created_at, updated_at`,
		c.Name, c.Description,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CategoryRepository) Get(ctx context.Context, id int) (*models.Category, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at
         FROM categories WHERE id=$1`, id)

	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &c, nil
}

// List returns all categories
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, description, created_at, updated_at
         FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Update updates an existing category
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE categories SET name=$1, description=$2, updated_at=CURRENT_TIMESTAMP
         WHERE id=$3`,
		c.Name, c.Description, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category unless repair requests still reference it.
func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM repair_requests WHERE category_id=$1`, id).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	tag, err := r.DB.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
