package storage

import (
	"context"

	"github.com/R3E-Network/exercise_tracker/internal/app/domain/exercise"
	"github.com/R3E-Network/exercise_tracker/internal/app/domain/user"
)

// UserStore persists users.
type UserStore interface {
	// CreateUser fails with a conflict error when the username is taken.
	CreateUser(ctx context.Context, usr user.User) (user.User, error)
	GetUser(ctx context.Context, id string) (user.User, error)
	// ListUsers returns users in creation order.
	ListUsers(ctx context.Context) ([]user.User, error)
}

// ExerciseStore persists exercises.
type ExerciseStore interface {
	// CreateExercise fails with a not-found error when the user does not exist.
	CreateExercise(ctx context.Context, ex exercise.Exercise) (exercise.Exercise, error)
	// QueryExercises returns the user's exercises with q applied.
	QueryExercises(ctx context.Context, userID string, q exercise.Query) ([]exercise.Exercise, error)
}
