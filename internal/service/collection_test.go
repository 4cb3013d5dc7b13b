package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavourly/backend/internal/service"
	"github.com/flavourly/backend/internal/testhelpers"
)

func TestCollectionLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db)
	stranger := testhelpers.CreateTestUser(t, db)
	collections := service.NewCollectionService(db)
	ctx := context.Background()

	recipe := testhelpers.CreateTestRecipe(t, db, user.ID)

	col, err := collections.CreateCollection(ctx, user.ID, "Weeknight Dinners", "fast ones", false)
	require.NoError(t, err)
	assert.Equal(t, "Weeknight Dinners", col.Name)

	require.NoError(t, collections.AddRecipe(ctx, col.ID, recipe.ID, user.ID))

	// Only the owner can touch a collection.
	err = collections.AddRecipe(ctx, col.ID, recipe.ID, stranger.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	listed, err := collections.ListCollections(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Recipes, 1)
	assert.Equal(t, recipe.ID, listed[0].Recipes[0].ID)

	require.NoError(t, collections.RemoveRecipe(ctx, col.ID, recipe.ID, user.ID))
	listed, err = collections.ListCollections(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, listed[0].Recipes)

	require.NoError(t, collections.DeleteCollection(ctx, col.ID, user.ID))
	listed, err = collections.ListCollections(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
