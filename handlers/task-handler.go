package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"taskflow-project/backend/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskService is the slice of the task service the HTTP layer depends
// on.
type TaskService interface {
	CreateTask(ctx context.Context, owner primitive.ObjectID, params models.CreateTaskParams) (*models.Task, error)
	GetTasksByProject(ctx context.Context, projectID string, owner primitive.ObjectID) ([]models.Task, error)
	UpdateTask(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type TaskHandler struct {
	service TaskService
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// parseDueDate accepts a calendar date or a full timestamp.
func parseDueDate(raw string) (*time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}

func validTaskStatus(s string) bool {
	switch models.TaskStatus(s) {
	case "", models.TaskPending, models.TaskInProgress, models.TaskDone:
		return true
	}
	return false
}

func validTaskPriority(p string) bool {
	switch models.TaskPriority(p) {
	case "", models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
	ProjectID   string `json:"projectId"`
}

func (r *CreateTaskRequest) validate() ([]FieldError, *time.Time) {
	var errs []FieldError
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)

	if r.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Task title is required"})
	}
	if r.ProjectID == "" {
		errs = append(errs, FieldError{Field: "projectId", Message: "Project ID is required"})
	} else if _, err := primitive.ObjectIDFromHex(r.ProjectID); err != nil {
		errs = append(errs, FieldError{Field: "projectId", Message: "Invalid Project ID format"})
	}
	if !validTaskPriority(r.Priority) {
		errs = append(errs, FieldError{Field: "priority", Message: "Invalid priority level"})
	}
	if !validTaskStatus(r.Status) {
		errs = append(errs, FieldError{Field: "status", Message: "Invalid status type"})
	}

	var dueDate *time.Time
	if r.DueDate != "" {
		parsed, ok := parseDueDate(r.DueDate)
		if !ok {
			errs = append(errs, FieldError{Field: "dueDate", Message: "Invalid date format"})
		}
		dueDate = parsed
	}

	return errs, dueDate
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs, dueDate := req.validate()
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	task, err := h.service.CreateTask(r.Context(), user.ID, models.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
		DueDate:     dueDate,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": true,
		"data":   task,
	})
}

func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.GetTasksByProject(r.Context(), mux.Vars(r)["projectId"], user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": true,
		"data":   tasks,
	})
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     string  `json:"dueDate"`
}

func (r *UpdateTaskRequest) validate() ([]FieldError, *time.Time) {
	var errs []FieldError
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		r.Title = &trimmed
		if trimmed == "" {
			errs = append(errs, FieldError{Field: "title", Message: "Title cannot be empty"})
		}
	}
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		r.Description = &trimmed
	}
	if !validTaskPriority(r.Priority) {
		errs = append(errs, FieldError{Field: "priority", Message: "Invalid priority level"})
	}
	if !validTaskStatus(r.Status) {
		errs = append(errs, FieldError{Field: "status", Message: "Invalid status type"})
	}

	var dueDate *time.Time
	if r.DueDate != "" {
		parsed, ok := parseDueDate(r.DueDate)
		if !ok {
			errs = append(errs, FieldError{Field: "dueDate", Message: "Invalid date format"})
		}
		dueDate = parsed
	}

	return errs, dueDate
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	errs, dueDate := req.validate()
	if len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), mux.Vars(r)["id"], models.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		Status:      models.TaskStatus(req.Status),
		DueDate:     dueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": true,
		"data":   task,
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Task deleted")
}
