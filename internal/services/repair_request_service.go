package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/khunmostz/Repair-Management-System/internal/cache"
	"github.com/khunmostz/Repair-Management-System/internal/models"
)

// RepairRequestStore is the persistence surface the repair service needs.
type RepairRequestStore interface {
	Create(ctx context.Context, req *models.RepairRequest) error
	Get(ctx context.Context, id int) (*models.RepairRequest, error)
	List(ctx context.Context) ([]models.RepairRequest, error)
	Update(ctx context.Context, req *models.RepairRequest) error
	Delete(ctx context.Context, id int) error
}

type RepairRequestService struct {
	Repo     RepairRequestStore
	Telegram *TelegramService
}

func NewRepairRequestService(repo RepairRequestStore, telegram *TelegramService) *RepairRequestService {
	return &RepairRequestService{Repo: repo, Telegram: telegram}
}

func (s *RepairRequestService) CreateRequest(ctx context.Context, requesterID int, req *models.CreateRepairRequestRequest) (*models.RepairRequest, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("title is required")
	}
	if req.CategoryID <= 0 {
		return nil, errors.New("category is required")
	}
	if len(req.Images) > models.MaxRequestImages {
		return nil, errors.New("too many images")
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, errors.New("invalid priority")
	}

	request := &models.RepairRequest{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		CategoryID:  req.CategoryID,
		RequesterID: requesterID,
		Status:      models.StatusPending,
		Priority:    priority,
		Images:      req.Images,
	}
	if err := s.Repo.Create(ctx, request); err != nil {
		return nil, err
	}
	cache.InvalidateRequestCaches(ctx)

	// Re-read so the notification carries joined names.
	created, err := s.Repo.Get(ctx, request.ID)
	if err != nil {
		return request, nil
	}
	if s.Telegram != nil {
		s.Telegram.NotifyNewRequest(ctx, created)
	}
	return created, nil
}

func (s *RepairRequestService) GetRequest(ctx context.Context, id int) (*models.RepairRequest, error) {
	return s.Repo.Get(ctx, id)
}

// ListRequests serves the list from Redis when possible; the cache is
// invalidated on every write.
func (s *RepairRequestService) ListRequests(ctx context.Context) ([]models.RepairRequest, error) {
	if data, ok := cache.GetCached(ctx, cache.RequestListKey); ok {
		var requests []models.RepairRequest
		if err := json.Unmarshal(data, &requests); err == nil {
			return requests, nil
		}
	}

	requests, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(requests); err == nil {
		cache.SetCached(ctx, cache.RequestListKey, data, 30*time.Second)
	}
	return requests, nil
}

// UpdateRequest applies only the fields present in req. Moving to
// completed stamps completedAt once; moving away clears it.
func (s *RepairRequestService) UpdateRequest(ctx context.Context, id int, req *models.UpdateRepairRequestRequest) (*models.RepairRequest, error) {
	request, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := request.Status
	oldTechnician := request.TechnicianID

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, errors.New("title is required")
		}
		request.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		request.Description = *req.Description
	}
	if req.Location != nil {
		request.Location = *req.Location
	}
	if req.CategoryID != nil {
		request.CategoryID = *req.CategoryID
	}
	if req.TechnicianID != nil {
		if *req.TechnicianID == 0 {
			request.TechnicianID = nil
		} else {
			request.TechnicianID = req.TechnicianID
		}
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, errors.New("invalid status")
		}
		request.Status = *req.Status
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, errors.New("invalid priority")
		}
		request.Priority = *req.Priority
	}
	if req.Cost != nil {
		request.Cost = *req.Cost
	}
	if req.RejectionReason != nil {
		request.RejectionReason = *req.RejectionReason
	}

	if request.Status == models.StatusCompleted {
		if request.CompletedAt == nil {
			now := time.Now()
			request.CompletedAt = &now
		}
	} else {
		request.CompletedAt = nil
	}

	if err := s.Repo.Update(ctx, request); err != nil {
		return nil, err
	}
	cache.InvalidateRequestCaches(ctx)

	updated, err := s.Repo.Get(ctx, id)
	if err != nil {
		updated = request
	}

	if s.Telegram != nil {
		assigned := updated.TechnicianID != nil && (oldTechnician == nil || *oldTechnician != *updated.TechnicianID)
		if assigned {
			s.Telegram.NotifyAssignment(ctx, updated)
		}
		if updated.Status != oldStatus {
			switch updated.Status {
			case models.StatusCompleted:
				s.Telegram.NotifyCompletion(ctx, updated)
			case models.StatusRejected:
				s.Telegram.NotifyRejection(ctx, updated)
			default:
				s.Telegram.NotifyStatusChange(ctx, updated, oldStatus)
			}
		}
	}
	return updated, nil
}

func (s *RepairRequestService) DeleteRequest(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateRequestCaches(ctx)
	return nil
}
