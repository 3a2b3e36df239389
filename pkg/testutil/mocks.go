// Package testutil provides common testing utilities and mock implementations.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/R3E-Network/exercise_tracker/internal/app/domain/exercise"
	"github.com/R3E-Network/exercise_tracker/internal/app/domain/user"
	"github.com/R3E-Network/exercise_tracker/internal/app/storage/memory"
)

// MockStore wraps an in-memory store and lets tests inject failures per
// operation. It satisfies storage.UserStore and storage.ExerciseStore.
type MockStore struct {
	*memory.Store

	mu    sync.Mutex
	errs  map[string]error
	calls map[string]int
}

// Operation names accepted by Fail and Calls.
const (
	OpCreateUser     = "CreateUser"
	OpGetUser        = "GetUser"
	OpListUsers      = "ListUsers"
	OpCreateExercise = "CreateExercise"
	OpQueryExercises = "QueryExercises"
)

// NewMockStore creates a mock backed by a fresh in-memory store.
func NewMockStore(opts ...memory.Option) *MockStore {
	return &MockStore{
		Store: memory.New(opts...),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// Fail makes every subsequent call to op return err. A nil err clears it.
func (m *MockStore) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.errs, op)
		return
	}
	m.errs[op] = err
}

// Calls reports how many times op was invoked.
func (m *MockStore) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *MockStore) record(op string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
	return m.errs[op]
}

func (m *MockStore) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if err := m.record(OpCreateUser); err != nil {
		return user.User{}, err
	}
	return m.Store.CreateUser(ctx, u)
}

func (m *MockStore) GetUser(ctx context.Context, id string) (user.User, error) {
	if err := m.record(OpGetUser); err != nil {
		return user.User{}, err
	}
	return m.Store.GetUser(ctx, id)
}

func (m *MockStore) ListUsers(ctx context.Context) ([]user.User, error) {
	if err := m.record(OpListUsers); err != nil {
		return nil, err
	}
	return m.Store.ListUsers(ctx)
}

func (m *MockStore) CreateExercise(ctx context.Context, ex exercise.Exercise) (exercise.Exercise, error) {
	if err := m.record(OpCreateExercise); err != nil {
		return exercise.Exercise{}, err
	}
	return m.Store.CreateExercise(ctx, ex)
}

func (m *MockStore) QueryExercises(ctx context.Context, userID string, q exercise.Query) ([]exercise.Exercise, error) {
	if err := m.record(OpQueryExercises); err != nil {
		return nil, err
	}
	return m.Store.QueryExercises(ctx, userID, q)
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
