package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/khunmostz/Repair-Management-System/internal/models"
	"github.com/khunmostz/Repair-Management-System/internal/repositories"
	"github.com/khunmostz/Repair-Management-System/internal/services"
	"github.com/khunmostz/Repair-Management-System/pkg/utils"
)

type CategoryHandler struct {
	Service *services.CategoryService
}

func NewCategoryHandler(s *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{Service: s}
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.Service.CreateCategory(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	category, err := h.Service.GetCategory(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Category not found")
		return
	}

	utils.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	var req models.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.Service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Category not found")
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	if err := h.Service.DeleteCategory(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.Error(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, repositories.ErrCategoryInUse):
			utils.Error(w, http.StatusConflict, "Category is used by existing repair requests")
		default:
			utils.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
