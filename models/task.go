package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "Pending"
	TaskInProgress TaskStatus = "In Progress"
	TaskDone       TaskStatus = "Done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// Task has no owner field of its own; ownership is transitive through
// the referenced project.
type Task struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Priority    TaskPriority       `json:"priority" bson:"priority"`
	Status      TaskStatus         `json:"status" bson:"status"`
	DueDate     *time.Time         `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	ProjectID   primitive.ObjectID `json:"projectId" bson:"projectId"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateTaskParams struct {
	Title       string
	Description string
	Priority    TaskPriority
	Status      TaskStatus
	DueDate     *time.Time
	ProjectID   string
}

// ApplyDefaults fills the enum defaults for a new task: Pending
// status, Medium priority.
func (p *CreateTaskParams) ApplyDefaults() {
	if p.Status == "" {
		p.Status = TaskPending
	}
	if p.Priority == "" {
		p.Priority = PriorityMedium
	}
}

// TaskUpdate is a partial patch; nil/empty fields are left untouched.
// The project reference is not part of the patch, it is immutable
// after creation.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    TaskPriority
	Status      TaskStatus
	DueDate     *time.Time
}
