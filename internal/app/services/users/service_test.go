package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/exercise_tracker/internal/app/storage/memory"
	"github.com/R3E-Network/exercise_tracker/internal/errors"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), nil)

	usr, err := svc.Create(ctx, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "alice", usr.Username)

	got, err := svc.Get(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr, got)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), nil)

	_, err := svc.Create(ctx, "")
	require.Error(t, err)
	serviceErr := errors.GetServiceError(err)
	require.NotNil(t, serviceErr)
	assert.Equal(t, errors.CodeBadRequest, serviceErr.Code)
	assert.Equal(t, "Username is required", serviceErr.Message)

	_, err = svc.Create(ctx, "bob")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob")
	require.Error(t, err)
	assert.Equal(t, "Username already exists", errors.GetServiceError(err).Message)
}

func TestService_UsernamesMatchExactly(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), nil)

	bob, err := svc.Create(ctx, "bob")
	require.NoError(t, err)

	padded, err := svc.Create(ctx, " bob")
	require.NoError(t, err)
	assert.Equal(t, " bob", padded.Username)
	assert.NotEqual(t, bob.ID, padded.ID)

	upper, err := svc.Create(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, "Bob", upper.Username)

	blank, err := svc.Create(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, "   ", blank.Username)

	_, err = svc.Create(ctx, " bob")
	assert.True(t, errors.Is(err, errors.CodeConflict))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}
