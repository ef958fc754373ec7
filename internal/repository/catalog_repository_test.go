package repository

import (
	"context"
	"testing"
	"time"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientListPrefixSearch(t *testing.T) {
	db := newTestDB(t)
	f := fixture{db: db}
	repo := NewIngredientRepository(db)

	f.ingredient(t, "Salt", "g")
	f.ingredient(t, "salmon", "g")
	f.ingredient(t, "Sugar", "g")
	f.ingredient(t, "sa_ffron", "g")

	items, err := repo.List("sal")
	require.NoError(t, err)
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	assert.ElementsMatch(t, []string{"Salt", "salmon"}, names)

	items, err = repo.List("sa_")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "sa_ffron", items[0].Name)

	items, err = repo.List("")
	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestIngredientBatchSkipsExisting(t *testing.T) {
	db := newTestDB(t)
	f := fixture{db: db}
	repo := NewIngredientRepository(db)

	f.ingredient(t, "Salt", "g")

	created, err := repo.CreateBatchIgnoreExisting([]models.Ingredient{
		{Name: "Salt", MeasurementUnit: "g"},
		{Name: "Salt", MeasurementUnit: "pinch"},
		{Name: "Milk", MeasurementUnit: "ml"},
	}, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, created)

	all, err := repo.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestIngredientDeleteRemovesAmounts(t *testing.T) {
	db := newTestDB(t)
	f := fixture{db: db}
	repo := NewIngredientRepository(db)
	recipes := NewRecipeRepository(db)

	salt := f.ingredient(t, "Salt", "g")
	r := f.recipe(t, f.user(t, "cook"), "stew", time.Now())
	require.NoError(t, recipes.AddAmounts(r.ID, []AmountKey{{salt.ID, 5}}))

	require.NoError(t, repo.Delete(salt.ID))

	keys, err := recipes.AmountKeys(r.ID)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestTagListAndDelete(t *testing.T) {
	db := newTestDB(t)
	f := fixture{db: db}
	repo := NewTagRepository(db)
	recipes := NewRecipeRepository(db)

	lunch := f.tag(t, "lunch")
	f.tag(t, "breakfast")
	r := f.recipe(t, f.user(t, "cook"), "stew", time.Now(), lunch)

	tags, err := repo.List("")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "breakfast", tags[0].Name)

	tags, err = repo.List("lunch")
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	found, err := repo.GetByIDs([]uint{lunch.ID, 999})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, repo.Delete(lunch.ID))
	ids, err := recipes.TagIDs(r.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUserListExactSearch(t *testing.T) {
	db := newTestDB(t)
	f := fixture{db: db}
	repo := NewUserRepository(db)

	f.user(t, "alice")
	f.user(t, "alicia")
	f.user(t, "bob")

	users, total, err := repo.List("alice", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "alice", users[0].Username)

	users, total, err = repo.List("bob@example.com", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "bob", users[0].Username)

	users, total, err = repo.List("", 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, users, 1)
	assert.Equal(t, "alicia", users[0].Username)
}

func TestMarkRepository(t *testing.T) {
	db := newTestDB(t)
	f := fixture{db: db}
	favorites := NewFavoriteRepository(db)
	carts := NewShoppingCartRepository(db)

	cook := f.user(t, "cook")
	r1 := f.recipe(t, cook, "r1", time.Now())
	r2 := f.recipe(t, cook, "r2", time.Now())

	require.NoError(t, favorites.Add(cook.ID, r1.ID))
	assert.Error(t, favorites.Add(cook.ID, r1.ID))

	inFavorites, err := favorites.Exists(cook.ID, r1.ID)
	require.NoError(t, err)
	assert.True(t, inFavorites)

	inCart, err := carts.Exists(cook.ID, r1.ID)
	require.NoError(t, err)
	assert.False(t, inCart)

	marked, err := favorites.MarkedRecipeIDs(cook.ID, []uint{r1.ID, r2.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{r1.ID: true}, marked)

	marked, err = favorites.MarkedRecipeIDs(0, []uint{r1.ID})
	require.NoError(t, err)
	assert.Empty(t, marked)

	removed, err := favorites.Remove(cook.ID, r1.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = favorites.Remove(cook.ID, r1.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFollowRepository(t *testing.T) {
	db := newTestDB(t)
	f := fixture{db: db}
	repo := NewFollowRepository(db)

	reader := f.user(t, "reader")
	a1 := f.user(t, "a1")
	a2 := f.user(t, "a2")

	require.NoError(t, repo.Create(reader.ID, a1.ID))
	require.NoError(t, repo.Create(reader.ID, a2.ID))
	assert.Error(t, repo.Create(reader.ID, a1.ID))
	assert.Error(t, repo.Create(reader.ID, reader.ID))

	authors, total, err := repo.ListAuthors(reader.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, authors, 2)
	assert.Equal(t, "a2", authors[0].Username)

	followed, err := repo.FollowedAuthorIDs(reader.ID, []uint{a1.ID, reader.ID})
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{a1.ID: true}, followed)

	removed, err := repo.Delete(reader.ID, a1.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	exists, err := repo.Exists(reader.ID, a1.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTokenRepositoryWithoutRedis(t *testing.T) {
	repo := NewTokenRepository(nil)
	ctx := context.Background()

	assert.False(t, repo.Enabled())
	require.NoError(t, repo.Revoke(ctx, "jti", time.Minute))

	revoked, err := repo.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}
