package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flavourly/backend/internal/search"
	"github.com/flavourly/backend/internal/testhelpers"
)

// These tests run the postgres jsonb query paths against a real
// database; they are skipped unless INTEGRATION_TESTS=true.

func TestPostgresTextQueryOverJSONB(t *testing.T) {
	db := testhelpers.SetupPostgresDB(t)
	user := testhelpers.CreateTestUser(t, db)

	testhelpers.CreateTestRecipe(t, db, user.ID,
		testhelpers.WithTitle("Tomato Soup"),
		testhelpers.WithIngredients("fresh basil", "tomato"))
	testhelpers.CreateTestRecipe(t, db, user.ID,
		testhelpers.WithTitle("Summer Salad"),
		testhelpers.WithTags("basil-lovers"))
	testhelpers.CreateTestRecipe(t, db, user.ID,
		testhelpers.WithTitle("Chocolate Cake"))

	got := runSearch(t, db, search.Params{Query: "Basil"})
	assert.ElementsMatch(t, []string{"Tomato Soup", "Summer Salad"}, titles(got))

	got = runSearch(t, db, search.Params{Query: "100%"})
	assert.Empty(t, got)
}

func TestPostgresTagMembership(t *testing.T) {
	db := testhelpers.SetupPostgresDB(t)
	user := testhelpers.CreateTestUser(t, db)

	testhelpers.CreateTestRecipe(t, db, user.ID,
		testhelpers.WithTitle("Lentil Curry"),
		testhelpers.WithTags("vegan", "spicy"))
	testhelpers.CreateTestRecipe(t, db, user.ID,
		testhelpers.WithTitle("Omelette"),
		testhelpers.WithTags("quick"))

	got := runSearch(t, db, search.Params{Tags: []string{"vegan"}})
	assert.Equal(t, []string{"Lentil Curry"}, titles(got))

	// Substrings of a tag never match.
	got = runSearch(t, db, search.Params{Tags: []string{"veg"}})
	assert.Empty(t, got)
}
