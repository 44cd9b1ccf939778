package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"taskflow-project/backend/logging"
	"taskflow-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	TasksCollection    *mongo.Collection
}

func NewProjectService(projectsCollection, tasksCollection *mongo.Collection) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projectsCollection,
		TasksCollection:    tasksCollection,
	}
}

// CreateProject persists a new project for the given owner. There is
// no uniqueness constraint on project names.
func (s *ProjectService) CreateProject(ctx context.Context, owner primitive.ObjectID, name, description string, status models.ProjectStatus) (*models.Project, error) {
	if status == "" {
		status = models.ProjectActive
	}

	now := time.Now()
	project := &models.Project{
		Name:        name,
		Description: description,
		Status:      status,
		Owner:       owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := s.ProjectsCollection.InsertOne(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	project.ID = result.InsertedID.(primitive.ObjectID)
	return project, nil
}

// buildProjectListFilter always scopes by owner; search is a
// case-insensitive substring match on the name, status an exact match.
func buildProjectListFilter(owner primitive.ObjectID, params models.ListProjectsParams) bson.M {
	filter := bson.M{"owner": owner}
	if params.Search != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(params.Search), Options: "i"}
	}
	if params.Status != "" {
		filter["status"] = params.Status
	}
	return filter
}

func totalPages(count int64, limit int) int {
	return int((count + int64(limit) - 1) / int64(limit))
}

// GetProjects returns one page of the owner's projects, newest first.
// The totals are computed over the filtered set.
func (s *ProjectService) GetProjects(ctx context.Context, owner primitive.ObjectID, params models.ListProjectsParams) (*models.ProjectPage, error) {
	params.Normalize()
	filter := buildProjectListFilter(owner, params)

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((params.Page - 1) * params.Limit)).
		SetLimit(int64(params.Limit))

	cursor, err := s.ProjectsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}

	count, err := s.ProjectsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	return &models.ProjectPage{
		Projects:      projects,
		TotalProjects: count,
		TotalPages:    totalPages(count, params.Limit),
		CurrentPage:   params.Page,
	}, nil
}

// GetProjectByID fetches a project scoped by (id, owner). A project
// owned by someone else answers exactly like a missing one.
func (s *ProjectService) GetProjectByID(ctx context.Context, id string, owner primitive.ObjectID) (*models.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrProjectNotFound
	}

	var project models.Project
	err = s.ProjectsCollection.FindOne(ctx, bson.M{"_id": objectID, "owner": owner}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	return &project, nil
}

// UpdateProject applies the patch atomically, scoped by (id, owner),
// and returns the post-update document.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, owner primitive.ObjectID, update models.ProjectUpdate) (*models.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrProjectNotFound
	}

	set := bson.M{
		"name":      update.Name,
		"updatedAt": time.Now(),
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Status != "" {
		set["status"] = update.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var project models.Project
	err = s.ProjectsCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID, "owner": owner},
		bson.M{"$set": set},
		opts,
	).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return &project, nil
}

// DeleteProject removes the project scoped by (id, owner) and then
// all tasks referencing it. The cascade is unscoped by owner, which is
// safe because ownership was just proven by the delete itself. The two
// steps are not one transaction; a crash in between leaves orphaned
// tasks that are unreachable through the API and swept up by any later
// cascade.
func (s *ProjectService) DeleteProject(ctx context.Context, id string, owner primitive.ObjectID) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrProjectNotFound
	}

	var deleted models.Project
	err = s.ProjectsCollection.FindOneAndDelete(ctx, bson.M{"_id": objectID, "owner": owner}).Decode(&deleted)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	result, err := s.TasksCollection.DeleteMany(ctx, bson.M{"projectId": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete project tasks: %w", err)
	}

	logging.Logger.WithFields(map[string]interface{}{
		"project": objectID.Hex(),
		"tasks":   result.DeletedCount,
	}).Info("project deleted with cascade")
	return nil
}

// GetStats aggregates the dashboard counters: projects owned by the
// user and tasks belonging to any of those projects.
func (s *ProjectService) GetStats(ctx context.Context, owner primitive.ObjectID) (*models.DashboardStats, error) {
	projectCount, err := s.ProjectsCollection.CountDocuments(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := s.ProjectsCollection.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project ids: %w", err)
	}
	defer cursor.Close(ctx)

	var refs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("failed to decode project ids: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}

	taskCount, err := s.TasksCollection.CountDocuments(ctx, bson.M{"projectId": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &models.DashboardStats{
		TotalProjects: projectCount,
		TotalTasks:    taskCount,
	}, nil
}
