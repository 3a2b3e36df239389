package memory

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/exercise_tracker/internal/app/domain/exercise"
	"github.com/R3E-Network/exercise_tracker/internal/app/domain/user"
	"github.com/R3E-Network/exercise_tracker/internal/errors"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestStore_CreateAndListUsers(t *testing.T) {
	ctx := context.Background()
	store := New()

	var created []user.User
	for _, name := range []string{"alice", "bob", "carol"} {
		usr, err := store.CreateUser(ctx, user.User{Username: name})
		require.NoError(t, err)
		require.NotEmpty(t, usr.ID)
		created = append(created, usr)
	}

	list, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, list)

	got, err := store.GetUser(ctx, created[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
}

func TestStore_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := New()

	first, err := store.CreateUser(ctx, user.User{Username: "alice"})
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, user.User{Username: "alice"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeConflict))

	// usernames are case sensitive
	_, err = store.CreateUser(ctx, user.User{Username: "Alice"})
	require.NoError(t, err)

	list, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0])
}

func TestStore_ConcurrentDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	store := New()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.CreateUser(ctx, user.User{Username: "racer"}); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	list, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_GetUserNotFound(t *testing.T) {
	_, err := New().GetUser(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestStore_IDsAreUnique(t *testing.T) {
	ctx := context.Background()
	store := New()
	pattern := regexp.MustCompile(`^[0-9a-z]{26}$`)
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		usr, err := store.CreateUser(ctx, user.User{Username: fmt.Sprintf("user-%d", i)})
		require.NoError(t, err)
		ex, err := store.CreateExercise(ctx, exercise.Exercise{UserID: usr.ID, Description: "run", Duration: 10})
		require.NoError(t, err)

		for _, id := range []string{usr.ID, ex.ID} {
			assert.Regexp(t, pattern, id)
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	}
}

func TestStore_RegeneratesCollidingIDs(t *testing.T) {
	ctx := context.Background()
	ids := []string{"dup", "dup", "", "fresh"}
	next := 0
	store := New(WithIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))

	first, err := store.CreateUser(ctx, user.User{Username: "a"})
	require.NoError(t, err)
	second, err := store.CreateUser(ctx, user.User{Username: "b"})
	require.NoError(t, err)

	assert.Equal(t, "dup", first.ID)
	assert.Equal(t, "fresh", second.ID)
}

func TestStore_CreateExerciseUnknownUser(t *testing.T) {
	_, err := New().CreateExercise(context.Background(), exercise.Exercise{UserID: "ghost", Description: "run", Duration: 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestStore_CreateExerciseDefaultsDateToToday(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 17, 15, 42, 7, 0, time.UTC)
	store := New(WithClock(fixedClock(now)))

	usr, err := store.CreateUser(ctx, user.User{Username: "alice"})
	require.NoError(t, err)

	ex, err := store.CreateExercise(ctx, exercise.Exercise{UserID: usr.ID, Description: "swim", Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), ex.Date)
	assert.Equal(t, now, ex.CreatedAt)

	supplied := time.Date(2023, 1, 1, 9, 0, 0, 0, time.FixedZone("X", -5*3600))
	ex, err = store.CreateExercise(ctx, exercise.Exercise{UserID: usr.ID, Description: "bike", Duration: 60, Date: supplied})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ex.Date.Location())
	assert.True(t, supplied.Equal(ex.Date))
}

func TestStore_QueryExercises(t *testing.T) {
	ctx := context.Background()
	store := New()

	alice, err := store.CreateUser(ctx, user.User{Username: "alice"})
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, user.User{Username: "bob"})
	require.NoError(t, err)

	for _, d := range []string{"2023-01-03", "2023-01-01", "2023-01-02"} {
		date, ok := exercise.ParseDate(d)
		require.True(t, ok)
		_, err := store.CreateExercise(ctx, exercise.Exercise{UserID: alice.ID, Description: d, Duration: 1, Date: date})
		require.NoError(t, err)
	}
	_, err = store.CreateExercise(ctx, exercise.Exercise{UserID: bob.ID, Description: "bob", Duration: 1})
	require.NoError(t, err)

	list, err := store.QueryExercises(ctx, alice.ID, exercise.Query{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2023-01-01", list[0].Description)
	assert.Equal(t, "2023-01-03", list[2].Description)
	for _, ex := range list {
		assert.Equal(t, alice.ID, ex.UserID)
	}

	list, err = store.QueryExercises(ctx, alice.ID, exercise.Query{Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2023-01-01", list[0].Description)

	list, err = store.QueryExercises(ctx, bob.ID, exercise.Query{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = store.QueryExercises(ctx, "ghost", exercise.Query{})
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestStore_ListUsersReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := New()
	_, err := store.CreateUser(ctx, user.User{Username: "alice"})
	require.NoError(t, err)

	list, err := store.ListUsers(ctx)
	require.NoError(t, err)
	list[0].Username = "mallory"

	again, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", again[0].Username)
}
