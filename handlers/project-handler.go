package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"taskflow-project/backend/middleware"
	"taskflow-project/backend/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectService is the slice of the project service the HTTP layer
// depends on.
type ProjectService interface {
	CreateProject(ctx context.Context, owner primitive.ObjectID, name, description string, status models.ProjectStatus) (*models.Project, error)
	GetProjects(ctx context.Context, owner primitive.ObjectID, params models.ListProjectsParams) (*models.ProjectPage, error)
	GetProjectByID(ctx context.Context, id string, owner primitive.ObjectID) (*models.Project, error)
	UpdateProject(ctx context.Context, id string, owner primitive.ObjectID, update models.ProjectUpdate) (*models.Project, error)
	DeleteProject(ctx context.Context, id string, owner primitive.ObjectID) error
	GetStats(ctx context.Context, owner primitive.ObjectID) (*models.DashboardStats, error)
}

type ProjectHandler struct {
	service ProjectService
}

func NewProjectHandler(service ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// requireUser fetches the identity attached by the auth middleware.
// Routes using it are always registered behind that middleware, the
// guard only covers miswiring.
func requireUser(w http.ResponseWriter, r *http.Request) (middleware.AuthUser, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided")
	}
	return user, ok
}

type ProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
}

func (r *ProjectRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		r.Description = &trimmed
	}
}

func (r *ProjectRequest) validate() []FieldError {
	var errs []FieldError
	if r.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Project name is required"})
	}
	switch models.ProjectStatus(r.Status) {
	case "", models.ProjectActive, models.ProjectCompleted:
	default:
		errs = append(errs, FieldError{Field: "status", Message: "Invalid status"})
	}
	return errs
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.normalize()
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	project, err := h.service.CreateProject(r.Context(), user.ID, req.Name, description, models.ProjectStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": true,
		"data":   project,
	})
}

func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	params := models.ListProjectsParams{
		Search: query.Get("search"),
		Status: models.ProjectStatus(query.Get("status")),
	}
	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		params.Limit = limit
	}

	result, err := h.service.GetProjects(r.Context(), user.ID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        true,
		"data":          result.Projects,
		"totalPages":    result.TotalPages,
		"currentPage":   result.CurrentPage,
		"totalProjects": result.TotalProjects,
	})
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	project, err := h.service.GetProjectByID(r.Context(), mux.Vars(r)["id"], user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": true,
		"data":   project,
	})
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req ProjectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.normalize()
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	update := models.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatus(req.Status),
	}

	project, err := h.service.UpdateProject(r.Context(), mux.Vars(r)["id"], user.ID, update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": true,
		"data":   project,
	})
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProject(r.Context(), mux.Vars(r)["id"], user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Project and associated tasks deleted")
}

func (h *ProjectHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetStats(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": true,
		"data":   stats,
	})
}
