package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
)

type Project struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Status      ProjectStatus      `json:"status" bson:"status"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ListProjectsParams carries the normalized query parameters for a
// paginated project listing.
type ListProjectsParams struct {
	Page   int
	Limit  int
	Search string
	Status ProjectStatus
}

// Normalize applies the listing defaults: page starts at 1 and the
// page size falls back to 9 (the dashboard grid size).
func (p *ListProjectsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 9
	}
}

// ProjectPage is one page of a filtered project listing. TotalProjects
// and TotalPages are computed over the filtered set, not the full
// owner set.
type ProjectPage struct {
	Projects      []Project
	TotalProjects int64
	TotalPages    int
	CurrentPage   int
}

// ProjectUpdate is the set of fields a project owner may change.
// The owner reference itself is immutable.
type ProjectUpdate struct {
	Name        string
	Description *string
	Status      ProjectStatus
}

type DashboardStats struct {
	TotalProjects int64 `json:"totalProjects"`
	TotalTasks    int64 `json:"totalTasks"`
}
