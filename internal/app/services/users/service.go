package users

import (
	"context"

	"github.com/R3E-Network/exercise_tracker/internal/app/domain/user"
	"github.com/R3E-Network/exercise_tracker/internal/app/metrics"
	"github.com/R3E-Network/exercise_tracker/internal/app/storage"
	"github.com/R3E-Network/exercise_tracker/internal/errors"
	"github.com/R3E-Network/exercise_tracker/pkg/logger"
)

// Service registers and looks up users.
type Service struct {
	store storage.UserStore
	log   *logger.Logger
}

// New constructs a user service.
func New(store storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{store: store, log: log}
}

// Create registers a new username. Names are kept verbatim, so uniqueness is
// an exact, case-sensitive match.
func (s *Service) Create(ctx context.Context, username string) (user.User, error) {
	if username == "" {
		return user.User{}, errors.BadRequest("Username is required")
	}

	created, err := s.store.CreateUser(ctx, user.User{Username: username})
	if err != nil {
		return user.User{}, err
	}
	metrics.RecordUserCreated()
	s.log.WithContext(ctx).
		WithField("user_id", created.ID).
		WithField("username", created.Username).
		Info("user created")
	return created, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id string) (user.User, error) {
	return s.store.GetUser(ctx, id)
}

// List returns every user in creation order.
func (s *Service) List(ctx context.Context) ([]user.User, error) {
	return s.store.ListUsers(ctx)
}
