package memory

import (
	"context"
	"sync"
	"time"

	"github.com/R3E-Network/exercise_tracker/internal/app/domain/exercise"
	"github.com/R3E-Network/exercise_tracker/internal/app/domain/user"
	"github.com/R3E-Network/exercise_tracker/internal/app/storage"
	"github.com/R3E-Network/exercise_tracker/internal/errors"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use: writes are serialized and reads never observe a
// partially applied write.
type Store struct {
	mu sync.RWMutex

	users      map[string]user.User
	userOrder  []string
	usernames  map[string]string // username -> id
	exercises  map[string]exercise.Exercise
	byUser     map[string][]string // user id -> exercise ids, insertion order
	now        func() time.Time
	generateID func() string
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.ExerciseStore = (*Store)(nil)

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used for creation timestamps and
// default exercise dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.generateID = gen
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		users:      make(map[string]user.User),
		usernames:  make(map[string]string),
		exercises:  make(map[string]exercise.Exercise),
		byUser:     make(map[string][]string),
		now:        time.Now,
		generateID: newID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserStore implementation -------------------------------------------------

func (s *Store) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[usr.Username]; taken {
		return user.User{}, errors.Conflict("Username already exists").WithDetails("username", usr.Username)
	}

	usr.ID = s.uniqueIDLocked(func(id string) bool {
		_, exists := s.users[id]
		return exists
	})
	usr.CreatedAt = s.now().UTC()

	s.users[usr.ID] = usr
	s.userOrder = append(s.userOrder, usr.ID)
	s.usernames[usr.Username] = usr.ID
	return usr, nil
}

func (s *Store) GetUser(_ context.Context, id string) (user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usr, ok := s.users[id]
	if !ok {
		return user.User{}, errors.NotFound("User not found").WithDetails("user_id", id)
	}
	return usr, nil
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]user.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		result = append(result, s.users[id])
	}
	return result, nil
}

// ExerciseStore implementation ---------------------------------------------

func (s *Store) CreateExercise(_ context.Context, ex exercise.Exercise) (exercise.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[ex.UserID]; !ok {
		return exercise.Exercise{}, errors.NotFound("User not found").WithDetails("user_id", ex.UserID)
	}

	now := s.now().UTC()
	if ex.Date.IsZero() {
		ex.Date = exercise.StartOfDay(now)
	}
	ex.Date = ex.Date.UTC()
	ex.CreatedAt = now
	ex.ID = s.uniqueIDLocked(func(id string) bool {
		_, exists := s.exercises[id]
		return exists
	})

	s.exercises[ex.ID] = ex
	s.byUser[ex.UserID] = append(s.byUser[ex.UserID], ex.ID)
	return ex, nil
}

func (s *Store) QueryExercises(_ context.Context, userID string, q exercise.Query) ([]exercise.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, errors.NotFound("User not found").WithDetails("user_id", userID)
	}

	ids := s.byUser[userID]
	owned := make([]exercise.Exercise, 0, len(ids))
	for _, id := range ids {
		owned = append(owned, s.exercises[id])
	}
	return q.Apply(owned), nil
}

// uniqueIDLocked draws ids until one is not taken in the target collection.
func (s *Store) uniqueIDLocked(taken func(string) bool) string {
	for {
		id := s.generateID()
		if id != "" && !taken(id) {
			return id
		}
	}
}
