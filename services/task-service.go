package services

import (
	"context"
	"fmt"
	"time"

	"taskflow-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskService struct {
	TasksCollection    *mongo.Collection
	ProjectsCollection *mongo.Collection
}

func NewTaskService(tasksCollection, projectsCollection *mongo.Collection) *TaskService {
	return &TaskService{
		TasksCollection:    tasksCollection,
		ProjectsCollection: projectsCollection,
	}
}

// verifyProjectOwnership checks that the project exists and belongs to
// the requester. A foreign project and a missing one are the same
// denial.
func (s *TaskService) verifyProjectOwnership(ctx context.Context, projectID string, owner primitive.ObjectID) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return primitive.NilObjectID, models.ErrProjectDenied
	}

	err = s.ProjectsCollection.FindOne(ctx, bson.M{"_id": objectID, "owner": owner}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, models.ErrProjectDenied
		}
		return primitive.NilObjectID, fmt.Errorf("failed to verify project: %w", err)
	}

	return objectID, nil
}

// CreateTask adds a task under a project the requester owns. The
// project reference is fixed at creation and never patched afterwards.
func (s *TaskService) CreateTask(ctx context.Context, owner primitive.ObjectID, params models.CreateTaskParams) (*models.Task, error) {
	projectID, err := s.verifyProjectOwnership(ctx, params.ProjectID, owner)
	if err != nil {
		return nil, err
	}

	params.ApplyDefaults()

	now := time.Now()
	task := &models.Task{
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		Status:      params.Status,
		DueDate:     params.DueDate,
		ProjectID:   projectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := s.TasksCollection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	task.ID = result.InsertedID.(primitive.ObjectID)
	return task, nil
}

// GetTasksByProject lists a project's tasks newest first, after the
// same ownership gate as task creation.
func (s *TaskService) GetTasksByProject(ctx context.Context, projectID string, owner primitive.ObjectID) ([]models.Task, error) {
	objectID, err := s.verifyProjectOwnership(ctx, projectID, owner)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.TasksCollection.Find(ctx, bson.M{"projectId": objectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask patches a task by id alone; project ownership was checked
// when the task was created and is not re-verified here.
func (s *TaskService) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrTaskNotFound
	}

	set := bson.M{"updatedAt": time.Now()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Priority != "" {
		set["priority"] = update.Priority
	}
	if update.Status != "" {
		set["status"] = update.Status
	}
	if update.DueDate != nil {
		set["dueDate"] = *update.DueDate
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task models.Task
	err = s.TasksCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		opts,
	).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &task, nil
}

// DeleteTask removes a task by id alone, mirroring UpdateTask's
// scoping.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrTaskNotFound
	}

	err = s.TasksCollection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
