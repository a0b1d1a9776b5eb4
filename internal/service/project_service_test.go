package service

import (
	"context"
	"testing"

	"github.com/porbotenet-wq/facadeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	_, err := env.projects.Current(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.projects.Create(ctx, "  ", "")
	assert.ErrorIs(t, err, ErrValidation)

	first, err := env.projects.Create(ctx, "Фасады 2024", "Основной")
	require.NoError(t, err)
	_, err = env.projects.Create(ctx, "Фасады 2025", "")
	require.NoError(t, err)

	current, err := env.projects.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)

	require.NoError(t, env.repos.Users.Create(ctx, testutil.NewTestUser("A")))
	_, err = env.objects.Create(ctx, CreateObjectInput{ProjectID: first.ID, Name: "ЖК Северный"})
	require.NoError(t, err)

	info, err := env.projects.Info(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, info.ObjectCount)
	assert.Equal(t, 1, info.ActiveUsers)

	_, err = env.projects.Info(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
