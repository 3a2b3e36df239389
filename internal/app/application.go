package app

import (
	"context"

	"github.com/R3E-Network/exercise_tracker/internal/app/services/exercises"
	"github.com/R3E-Network/exercise_tracker/internal/app/services/users"
	"github.com/R3E-Network/exercise_tracker/internal/app/storage"
	"github.com/R3E-Network/exercise_tracker/internal/app/storage/memory"
	"github.com/R3E-Network/exercise_tracker/internal/app/system"
	"github.com/R3E-Network/exercise_tracker/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to one
// shared in-memory store, so exercises always see the users they reference.
type Stores struct {
	Users     storage.UserStore
	Exercises storage.ExerciseStore
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Users     *users.Service
	Exercises *exercises.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	if stores.Users == nil || stores.Exercises == nil {
		mem := memory.New()
		if stores.Users == nil {
			stores.Users = mem
		}
		if stores.Exercises == nil {
			stores.Exercises = mem
		}
	}

	return &Application{
		manager:   system.NewManager(),
		log:       log,
		Users:     users.New(stores.Users, log.Named("users")),
		Exercises: exercises.New(stores.Users, stores.Exercises, log.Named("exercises")),
	}, nil
}

// Attach registers a lifecycle-managed service, such as the housekeeping
// scheduler. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
