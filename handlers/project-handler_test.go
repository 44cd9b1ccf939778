package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskflow-project/backend/middleware"
	"taskflow-project/backend/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockProjectService struct {
	createFn func(ctx context.Context, owner primitive.ObjectID, name, description string, status models.ProjectStatus) (*models.Project, error)
	listFn   func(ctx context.Context, owner primitive.ObjectID, params models.ListProjectsParams) (*models.ProjectPage, error)
	getFn    func(ctx context.Context, id string, owner primitive.ObjectID) (*models.Project, error)
	updateFn func(ctx context.Context, id string, owner primitive.ObjectID, update models.ProjectUpdate) (*models.Project, error)
	deleteFn func(ctx context.Context, id string, owner primitive.ObjectID) error
	statsFn  func(ctx context.Context, owner primitive.ObjectID) (*models.DashboardStats, error)
}

func (m *mockProjectService) CreateProject(ctx context.Context, owner primitive.ObjectID, name, description string, status models.ProjectStatus) (*models.Project, error) {
	return m.createFn(ctx, owner, name, description, status)
}

func (m *mockProjectService) GetProjects(ctx context.Context, owner primitive.ObjectID, params models.ListProjectsParams) (*models.ProjectPage, error) {
	return m.listFn(ctx, owner, params)
}

func (m *mockProjectService) GetProjectByID(ctx context.Context, id string, owner primitive.ObjectID) (*models.Project, error) {
	return m.getFn(ctx, id, owner)
}

func (m *mockProjectService) UpdateProject(ctx context.Context, id string, owner primitive.ObjectID, update models.ProjectUpdate) (*models.Project, error) {
	return m.updateFn(ctx, id, owner, update)
}

func (m *mockProjectService) DeleteProject(ctx context.Context, id string, owner primitive.ObjectID) error {
	return m.deleteFn(ctx, id, owner)
}

func (m *mockProjectService) GetStats(ctx context.Context, owner primitive.ObjectID) (*models.DashboardStats, error) {
	return m.statsFn(ctx, owner)
}

// authedRequest builds a request carrying an authenticated identity,
// the way the auth middleware leaves it.
func authedRequest(method, target string, body io.Reader, user middleware.AuthUser) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.ContextWithUser(req.Context(), user))
}

func testUser() middleware.AuthUser {
	return middleware.AuthUser{ID: primitive.NewObjectID(), Role: models.RoleUser}
}

func TestCreateProjectPassesOwner(t *testing.T) {
	user := testUser()
	var gotOwner primitive.ObjectID
	var gotStatus models.ProjectStatus

	h := NewProjectHandler(&mockProjectService{
		createFn: func(ctx context.Context, owner primitive.ObjectID, name, description string, status models.ProjectStatus) (*models.Project, error) {
			gotOwner = owner
			gotStatus = status
			return &models.Project{ID: primitive.NewObjectID(), Name: name, Status: models.ProjectActive, Owner: owner}, nil
		},
	})

	body := `{"name":"  Website  "}`
	req := authedRequest(http.MethodPost, "/api/project/create", strings.NewReader(body), user)
	w := httptest.NewRecorder()

	h.CreateProject(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if gotOwner != user.ID {
		t.Errorf("owner = %v, want requester %v", gotOwner, user.ID)
	}
	if gotStatus != "" {
		t.Errorf("status = %q, want empty (service applies the Active default)", gotStatus)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{})

	tests := []struct {
		name string
		body string
	}{
		{"blank name", `{"name":"   "}`},
		{"bad status", `{"name":"Website","status":"Archived"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/api/project/create", strings.NewReader(tt.body), testUser())
			w := httptest.NewRecorder()

			h.CreateProject(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestGetProjectsPagination(t *testing.T) {
	var gotParams models.ListProjectsParams
	h := NewProjectHandler(&mockProjectService{
		listFn: func(ctx context.Context, owner primitive.ObjectID, params models.ListProjectsParams) (*models.ProjectPage, error) {
			gotParams = params
			return &models.ProjectPage{
				Projects:      []models.Project{{Name: "P4"}, {Name: "P3"}},
				TotalProjects: 5,
				TotalPages:    3,
				CurrentPage:   2,
			}, nil
		},
	})

	req := authedRequest(http.MethodGet, "/api/project/getAll?page=2&limit=2&search=P&status=Active", nil, testUser())
	w := httptest.NewRecorder()

	h.GetProjects(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotParams.Page != 2 || gotParams.Limit != 2 {
		t.Errorf("params = %+v, want page 2 limit 2", gotParams)
	}
	if gotParams.Search != "P" || gotParams.Status != models.ProjectActive {
		t.Errorf("params = %+v, want search P status Active", gotParams)
	}

	var resp struct {
		Data          []models.Project `json:"data"`
		TotalPages    int              `json:"totalPages"`
		CurrentPage   int              `json:"currentPage"`
		TotalProjects int              `json:"totalProjects"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("len(data) = %d, want 2", len(resp.Data))
	}
	if resp.TotalPages != 3 || resp.TotalProjects != 5 || resp.CurrentPage != 2 {
		t.Errorf("totals = %d/%d/%d, want pages 3, projects 5, current 2",
			resp.TotalPages, resp.TotalProjects, resp.CurrentPage)
	}
}

func TestGetProjectByIDNotFound(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{
		getFn: func(ctx context.Context, id string, owner primitive.ObjectID) (*models.Project, error) {
			// Foreign and missing projects answer identically.
			return nil, models.ErrProjectNotFound
		},
	})

	req := authedRequest(http.MethodGet, "/api/project/get/abc", nil, testUser())
	req = mux.SetURLVars(req, map[string]string{"id": primitive.NewObjectID().Hex()})
	w := httptest.NewRecorder()

	h.GetProjectByID(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteProjectRepeatedIsNotFound(t *testing.T) {
	deleted := false
	h := NewProjectHandler(&mockProjectService{
		deleteFn: func(ctx context.Context, id string, owner primitive.ObjectID) error {
			if deleted {
				return models.ErrProjectNotFound
			}
			deleted = true
			return nil
		},
	})

	id := primitive.NewObjectID().Hex()
	run := func() *httptest.ResponseRecorder {
		req := authedRequest(http.MethodDelete, "/api/project/delete/"+id, nil, testUser())
		req = mux.SetURLVars(req, map[string]string{"id": id})
		w := httptest.NewRecorder()
		h.DeleteProject(w, req)
		return w
	}

	if w := run(); w.Code != http.StatusOK {
		t.Errorf("first delete status = %d, want %d", w.Code, http.StatusOK)
	}
	if w := run(); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGetDashboardStats(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{
		statsFn: func(ctx context.Context, owner primitive.ObjectID) (*models.DashboardStats, error) {
			return &models.DashboardStats{TotalProjects: 2, TotalTasks: 3}, nil
		},
	})

	req := authedRequest(http.MethodGet, "/api/project/stats", nil, testUser())
	w := httptest.NewRecorder()

	h.GetDashboardStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Data models.DashboardStats `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Data.TotalProjects != 2 || resp.Data.TotalTasks != 3 {
		t.Errorf("stats = %+v, want {2 3}", resp.Data)
	}
}

func TestProjectEndpointsRequireIdentity(t *testing.T) {
	h := NewProjectHandler(&mockProjectService{})

	req := httptest.NewRequest(http.MethodGet, "/api/project/stats", nil)
	w := httptest.NewRecorder()

	h.GetDashboardStats(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
