package exercises

import (
	"context"

	"github.com/R3E-Network/exercise_tracker/internal/app/domain/exercise"
	"github.com/R3E-Network/exercise_tracker/internal/app/domain/user"
	"github.com/R3E-Network/exercise_tracker/internal/app/metrics"
	"github.com/R3E-Network/exercise_tracker/internal/app/storage"
	"github.com/R3E-Network/exercise_tracker/pkg/logger"
)

// AddInput is the raw add-exercise request. Duration and Date arrive as
// strings whatever the wire encoding was.
type AddInput struct {
	Description string
	Duration    string
	Date        string
}

// LogParams are the raw log query parameters; empty means absent.
type LogParams struct {
	From  string
	To    string
	Limit string
}

// Log is a user's filtered exercise history.
type Log struct {
	User      user.User
	Exercises []exercise.Exercise
}

// Count is the number of entries in the log.
func (l Log) Count() int {
	return len(l.Exercises)
}

// Service logs exercises against users and answers log queries.
type Service struct {
	users storage.UserStore
	store storage.ExerciseStore
	log   *logger.Logger
}

// New constructs an exercise service.
func New(users storage.UserStore, store storage.ExerciseStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("exercises")
	}
	return &Service{users: users, store: store, log: log}
}

// Add records an exercise for userID. The user is resolved before the input
// is looked at, so an unknown user is reported as not found even when the
// body is invalid.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) (user.User, exercise.Exercise, error) {
	usr, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return user.User{}, exercise.Exercise{}, err
	}

	ex, err := parseAddInput(in)
	if err != nil {
		return user.User{}, exercise.Exercise{}, err
	}
	ex.UserID = usr.ID

	created, err := s.store.CreateExercise(ctx, ex)
	if err != nil {
		return user.User{}, exercise.Exercise{}, err
	}
	metrics.RecordExerciseLogged(created.Duration)
	s.log.WithContext(ctx).
		WithField("user_id", usr.ID).
		WithField("exercise_id", created.ID).
		WithField("duration", created.Duration).
		Info("exercise logged")
	return usr, created, nil
}

// Log returns userID's exercises filtered by params. Every parameter is
// validated (from, then to, then limit) before any filtering happens.
func (s *Service) Log(ctx context.Context, userID string, params LogParams) (Log, error) {
	usr, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return Log{}, err
	}

	q, err := parseQuery(params)
	if err != nil {
		return Log{}, err
	}

	list, err := s.store.QueryExercises(ctx, usr.ID, q)
	if err != nil {
		return Log{}, err
	}
	metrics.RecordLogQuery(len(list))
	return Log{User: usr, Exercises: list}, nil
}
