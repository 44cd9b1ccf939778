package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"taskflow-project/backend/config"
	"taskflow-project/backend/handlers"
	"taskflow-project/backend/logging"
	"taskflow-project/backend/middleware"
	"taskflow-project/backend/services"

	"github.com/gorilla/mux"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// createEmailIndex enforces email uniqueness at the store level; the
// register pre-check alone would race.
func createEmailIndex(collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := collection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on user email: %w", err)
	}
	return nil
}

func main() {
	logging.InitLogger("logs")

	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("configuration error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logging.Logger.Fatalf("database connection failed: %v", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("database ping failed: %v", err)
	}
	logging.Logger.Infof("connected to MongoDB at %s", cfg.MongoURI)

	db := client.Database(cfg.MongoDBName)
	usersCollection := db.Collection("users")
	projectsCollection := db.Collection("projects")
	tasksCollection := db.Collection("tasks")

	if err := createEmailIndex(usersCollection); err != nil {
		logging.Logger.Fatal(err)
	}

	jwtService := services.NewJWTService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	userService := services.NewUserService(usersCollection, jwtService)
	projectService := services.NewProjectService(projectsCollection, tasksCollection)
	taskService := services.NewTaskService(tasksCollection, projectsCollection)

	authHandler := handlers.NewAuthHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	storeBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mongo-health",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Warnf("circuit breaker %s changed from %s to %s", name, from.String(), to.String())
		},
	})
	healthHandler := handlers.NewHealthHandler(client, storeBreaker)

	authMW := middleware.JWTAuthMiddleware(jwtService)

	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.Handle("/admin-only", authMW(middleware.RequireAdmin(http.HandlerFunc(handlers.AdminOnly)))).Methods(http.MethodGet)

	project := api.PathPrefix("/project").Subrouter()
	project.Use(authMW)
	project.HandleFunc("/create", projectHandler.CreateProject).Methods(http.MethodPost)
	project.HandleFunc("/getAll", projectHandler.GetProjects).Methods(http.MethodGet)
	project.HandleFunc("/stats", projectHandler.GetDashboardStats).Methods(http.MethodGet)
	project.HandleFunc("/get/{id}", projectHandler.GetProjectByID).Methods(http.MethodGet)
	project.HandleFunc("/update/{id}", projectHandler.UpdateProject).Methods(http.MethodPut)
	project.HandleFunc("/delete/{id}", projectHandler.DeleteProject).Methods(http.MethodDelete)

	task := api.PathPrefix("/task").Subrouter()
	task.Use(authMW)
	task.HandleFunc("/create", taskHandler.CreateTask).Methods(http.MethodPost)
	task.HandleFunc("/getAll/{projectId}", taskHandler.GetTasksByProject).Methods(http.MethodGet)
	task.HandleFunc("/update/{id}", taskHandler.UpdateTask).Methods(http.MethodPut)
	task.HandleFunc("/delete/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      middleware.EnableCORS(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logging.Logger.Infof("server running on port %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("server failed: %v", err)
	}
}
