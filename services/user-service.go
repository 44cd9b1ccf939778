package services

import (
	"context"
	"fmt"
	"time"

	"taskflow-project/backend/logging"
	"taskflow-project/backend/models"
	"taskflow-project/backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserService struct {
	UserCollection *mongo.Collection
	JWTService     *JWTService
}

func NewUserService(userCollection *mongo.Collection, jwtService *JWTService) *UserService {
	return &UserService{
		UserCollection: userCollection,
		JWTService:     jwtService,
	}
}

// Register creates a new account with a hashed credential and the
// default role. The email arrives lowercased and trimmed from the
// boundary; the unique index on email backs up the duplicate check.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var existing models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		return nil, models.ErrUserExists
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		Name:      name,
		Email:     email,
		Password:  hashed,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := s.UserCollection.InsertOne(ctx, user)
	if err != nil {
		// The pre-check races with concurrent registrations; the
		// unique index is the authority.
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrUserExists
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	logging.Logger.WithField("email", user.Email).Info("user registered")
	return user, nil
}

// Login verifies the credential and issues a session token. An
// unknown email and a wrong password are reported separately, the way
// the API has always answered; both map to the same client status.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, "", models.ErrUserNotRegistered
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, "", models.ErrInvalidLogin
	}

	token, err := s.JWTService.GenerateAuthToken(user.ID.Hex(), string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return &user, token, nil
}
