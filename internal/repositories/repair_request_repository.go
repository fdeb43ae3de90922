package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khunmostz/Repair-Management-System/internal/models"
)

type RepairRequestRepository struct {
	DB *pgxpool.Pool
}

func NewRepairRequestRepository(db *pgxpool.Pool) *RepairRequestRepository {
	return &RepairRequestRepository{DB: db}
}

// selectRequest joins the referenced category, requester and (optional)
// technician so responses carry the populated relations the client
// renders from.
const selectRequest = `
	SELECT r.id, r.title, r.description, r.location, r.category_id,
	       r.requester_id, r.technician_id, r.status, r.priority, r.images,
	       r.cost, r.rejection_reason, r.completed_at, r.created_at, r.updated_at,
	       c.id, c.name, c.description, c.created_at, c.updated_at,
	       u.id, u.username, u.email, u.full_name, u.role, u.phone_number, u.telegram_id, u.created_at, u.updated_at,
	       t.id, t.username, t.email, t.full_name, t.role, t.phone_number, t.telegram_id, t.created_at, t.updated_at
	FROM repair_requests r
	JOIN categories c ON c.id = r.category_id
	JOIN users u ON u.id = r.requester_id
	LEFT JOIN users t ON t.id = r.technician_id`

func scanRequest(row pgx.Row) (*models.RepairRequest, error) {
	var (
		req  models.RepairRequest
		cat  models.Category
		user models.User

		techID       *int
		techUsername *string
		techEmail    *string
		techFullName *string
		techRole     *models.UserRole
		techPhone    *string
		techTelegram *string
		techCreated  *time.Time
		techUpdated  *time.Time
	)
	err := row.Scan(
		&req.ID, &req.Title, &req.Description, &req.Location, &req.CategoryID,
		&req.RequesterID, &req.TechnicianID, &req.Status, &req.Priority, &req.Images,
		&req.Cost, &req.RejectionReason, &req.CompletedAt, &req.CreatedAt, &req.UpdatedAt,
		&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt, &cat.UpdatedAt,
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.Role, &user.PhoneNumber, &user.TelegramID, &user.CreatedAt, &user.UpdatedAt,
		&techID, &techUsername, &techEmail, &techFullName, &techRole, &techPhone, &techTelegram, &techCreated, &techUpdated,
	)
	if err != nil {
		return nil, err
	}

	req.Category = &cat
	req.Requester = &user
	if techID != nil {
		tech := models.User{
			ID:          *techID,
			Username:    deref(techUsername),
			Email:       deref(techEmail),
			FullName:    deref(techFullName),
			PhoneNumber: deref(techPhone),
			TelegramID:  deref(techTelegram),
		}
		if techRole != nil {
			tech.Role = *techRole
		}
		if techCreated != nil {
			tech.CreatedAt = *techCreated
		}
		if techUpdated != nil {
			tech.UpdatedAt = *techUpdated
		}
		req.Technician = &tech
	}
	if req.Images == nil {
		req.Images = []string{}
	}
	return &req, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *RepairRequestRepository) Create(ctx context.Context, req *models.RepairRequest) error {
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if req.Images == nil {
		req.Images = []string{}
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO repair_requests(title, description, location, category_id, requester_id, technician_id, status, priority, images, cost, rejection_reason)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
         RETURNING id, created_at, updated_at`,
		req.Title, req.Description, req.Location, req.CategoryID, req.RequesterID,
		req.TechnicianID, req.Status, req.Priority, req.Images, req.Cost, req.RejectionReason,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *RepairRequestRepository) Get(ctx context.Context, id int) (*models.RepairRequest, error) {
	req, err := scanRequest(r.DB.QueryRow(ctx, selectRequest+` WHERE r.id=$1`, id))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return req, nil
}

// List returns all repair requests, newest first, with relations
// populated.
func (r *RepairRequestRepository) List(ctx context.Context) ([]models.RepairRequest, error) {
	rows, err := r.DB.Query(ctx, selectRequest+` ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.RepairRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// Update persists the full row; callers apply partial-update semantics
// before handing the entity over.
func (r *RepairRequestRepository) Update(ctx context.Context, req *models.RepairRequest) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE repair_requests
         SET title=$1, description=$2, location=$3, category_id=$4, technician_id=$5,
             status=$6, priority=$7, images=$8, cost=$9, rejection_reason=$10,
             completed_at=$11, updated_at=CURRENT_TIMESTAMP
         WHERE id=$12`,
		req.Title, req.Description, req.Location, req.CategoryID, req.TechnicianID,
		req.Status, req.Priority, req.Images, req.Cost, req.RejectionReason,
		req.CompletedAt, req.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a repair request
func (r *RepairRequestRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM repair_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
