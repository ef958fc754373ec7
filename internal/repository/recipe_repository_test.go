package repository

import (
	"testing"
	"time"

	"foodgram/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RecipeRepositorySuite struct {
	suite.Suite

	repo      *RecipeRepository
	favorites *MarkRepository
	carts     *MarkRepository

	alice, bob            *models.User
	breakfast, lunch      *models.Tag
	pancakes, soup, salad *models.Recipe
}

func TestRecipeRepositorySuite(t *testing.T) {
	suite.Run(t, new(RecipeRepositorySuite))
}

func (s *RecipeRepositorySuite) SetupTest() {
	t := s.T()
	db := newTestDB(t)
	f := fixture{db: db}

	s.repo = NewRecipeRepository(db)
	s.favorites = NewFavoriteRepository(db)
	s.carts = NewShoppingCartRepository(db)

	s.alice = f.user(t, "alice")
	s.bob = f.user(t, "bob")
	s.breakfast = f.tag(t, "breakfast")
	s.lunch = f.tag(t, "lunch")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.pancakes = f.recipe(t, s.alice, "pancakes", base, s.breakfast, s.lunch)
	s.soup = f.recipe(t, s.bob, "soup", base.Add(time.Hour), s.lunch)
	s.salad = f.recipe(t, s.alice, "salad", base.Add(2*time.Hour))

	require.NoError(t, s.favorites.Add(s.bob.ID, s.pancakes.ID))
	require.NoError(t, s.carts.Add(s.bob.ID, s.soup.ID))
}

func (s *RecipeRepositorySuite) names(recipes []models.Recipe) []string {
	names := make([]string, len(recipes))
	for i, r := range recipes {
		names[i] = r.Name
	}
	return names
}

func (s *RecipeRepositorySuite) list(filter RecipeFilter) ([]string, int64) {
	recipes, total, err := s.repo.List(filter, 0, 100)
	s.Require().NoError(err)
	return s.names(recipes), total
}

func (s *RecipeRepositorySuite) TestListOrdersNewestFirst() {
	names, total := s.list(RecipeFilter{})
	s.Equal([]string{"salad", "soup", "pancakes"}, names)
	s.EqualValues(3, total)
}

func (s *RecipeRepositorySuite) TestTagsMatchAnyWithoutDuplicates() {
	names, total := s.list(RecipeFilter{TagSlugs: []string{"breakfast", "lunch"}})
	s.Equal([]string{"soup", "pancakes"}, names)
	s.EqualValues(2, total)
}

func (s *RecipeRepositorySuite) TestFavoritedFilter() {
	yes, no := true, false

	names, _ := s.list(RecipeFilter{ViewerID: s.bob.ID, IsFavorited: &yes})
	s.Equal([]string{"pancakes"}, names)

	names, _ = s.list(RecipeFilter{ViewerID: s.bob.ID, IsFavorited: &no})
	s.Equal([]string{"salad", "soup"}, names)

	// alice 没有收藏
	names, total := s.list(RecipeFilter{ViewerID: s.alice.ID, IsFavorited: &yes})
	s.Empty(names)
	s.Zero(total)

	names, _ = s.list(RecipeFilter{ViewerID: s.alice.ID, IsFavorited: &no})
	s.Len(names, 3)
}

func (s *RecipeRepositorySuite) TestCountReferences() {
	count, err := s.repo.CountTags([]uint{s.breakfast.ID, s.lunch.ID, 9999})
	s.Require().NoError(err)
	s.EqualValues(2, count)

	count, err = s.repo.CountIngredients(nil)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *RecipeRepositorySuite) TestShoppingCartFilterCombinesWithAuthor() {
	yes := true
	bobID := s.bob.ID
	aliceID := s.alice.ID

	names, _ := s.list(RecipeFilter{ViewerID: s.bob.ID, IsInShoppingCart: &yes, AuthorID: &bobID})
	s.Equal([]string{"soup"}, names)

	names, _ = s.list(RecipeFilter{ViewerID: s.bob.ID, IsInShoppingCart: &yes, AuthorID: &aliceID})
	s.Empty(names)
}

func (s *RecipeRepositorySuite) TestAnonymousViewerFlags() {
	yes, no := true, false

	names, total := s.list(RecipeFilter{IsFavorited: &yes})
	s.Empty(names)
	s.Zero(total)

	names, _ = s.list(RecipeFilter{IsInShoppingCart: &no})
	s.Len(names, 3)
}

func (s *RecipeRepositorySuite) TestListPaginates() {
	recipes, total, err := s.repo.List(RecipeFilter{}, 1, 1)
	s.Require().NoError(err)
	s.EqualValues(3, total)
	s.Equal([]string{"soup"}, s.names(recipes))
}

func (s *RecipeRepositorySuite) TestGetDetailPreloadsRelations() {
	recipe, err := s.repo.GetDetail(s.pancakes.ID)
	s.Require().NoError(err)

	s.Equal("alice", recipe.Author.Username)
	s.Require().Len(recipe.TagRecipes, 2)
	s.Equal("breakfast", recipe.TagRecipes[0].Tag.Slug)
	s.Equal("lunch", recipe.TagRecipes[1].Tag.Slug)
}

func (s *RecipeRepositorySuite) TestDeleteRemovesDependentRows() {
	s.Require().NoError(s.repo.Delete(s.pancakes.ID))

	_, err := s.repo.GetByID(s.pancakes.ID)
	s.Error(err)

	tagIDs, err := s.repo.TagIDs(s.pancakes.ID)
	s.Require().NoError(err)
	s.Empty(tagIDs)

	favorited, err := s.favorites.Exists(s.bob.ID, s.pancakes.ID)
	s.Require().NoError(err)
	s.False(favorited)
}

func (s *RecipeRepositorySuite) TestExistsByNameExcludesSelf() {
	exists, err := s.repo.ExistsByName("soup", 0)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.repo.ExistsByName("soup", s.soup.ID)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *RecipeRepositorySuite) TestListByAuthorLimit() {
	recipes, err := s.repo.ListByAuthor(s.alice.ID, 1)
	s.Require().NoError(err)
	s.Equal([]string{"salad"}, s.names(recipes))

	recipes, err = s.repo.ListByAuthor(s.alice.ID, 0)
	s.Require().NoError(err)
	s.Len(recipes, 2)

	count, err := s.repo.CountByAuthor(s.alice.ID)
	s.Require().NoError(err)
	s.EqualValues(2, count)
}

func TestAggregateShoppingCart(t *testing.T) {
	db := newTestDB(t)
	f := fixture{db: db}
	repo := NewRecipeRepository(db)
	carts := NewShoppingCartRepository(db)

	cook := f.user(t, "cook")
	buyer := f.user(t, "buyer")
	salt := f.ingredient(t, "Salt", "g")
	sugar := f.ingredient(t, "Sugar", "kg")
	saltPinch := f.ingredient(t, "Salt", "pinch")

	now := time.Now()
	r1 := f.recipe(t, cook, "r1", now)
	r2 := f.recipe(t, cook, "r2", now)
	r3 := f.recipe(t, cook, "r3", now)

	require.NoError(t, repo.AddAmounts(r1.ID, []AmountKey{{salt.ID, 100}, {sugar.ID, 0.25}}))
	require.NoError(t, repo.AddAmounts(r2.ID, []AmountKey{{salt.ID, 200}, {sugar.ID, 0.25}, {saltPinch.ID, 1}}))
	require.NoError(t, repo.AddAmounts(r3.ID, []AmountKey{{salt.ID, 1000}}))

	require.NoError(t, carts.Add(buyer.ID, r1.ID))
	require.NoError(t, carts.Add(buyer.ID, r2.ID))

	totals, err := repo.AggregateShoppingCart(buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, []IngredientTotal{
		{Name: "Salt", MeasurementUnit: "g", Total: 300},
		{Name: "Salt", MeasurementUnit: "pinch", Total: 1},
		{Name: "Sugar", MeasurementUnit: "kg", Total: 0.5},
	}, totals)

	empty, err := repo.AggregateShoppingCart(cook.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReconcileRowsKeepUnchangedKeys(t *testing.T) {
	db := newTestDB(t)
	f := fixture{db: db}
	repo := NewRecipeRepository(db)

	cook := f.user(t, "cook")
	a := f.tag(t, "a")
	b := f.tag(t, "b")
	c := f.tag(t, "c")
	salt := f.ingredient(t, "Salt", "g")

	r := f.recipe(t, cook, "stew", time.Now(), a, b)
	require.NoError(t, repo.AddAmounts(r.ID, []AmountKey{{salt.ID, 5}}))

	var before models.TagRecipe
	require.NoError(t, db.Where("recipe_id = ? AND tag_id = ?", r.ID, b.ID).First(&before).Error)

	require.NoError(t, repo.RemoveTags(r.ID, []uint{a.ID}))
	require.NoError(t, repo.AddTags(r.ID, []uint{c.ID}))

	ids, err := repo.TagIDs(r.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{b.ID, c.ID}, ids)

	var after models.TagRecipe
	require.NoError(t, db.Where("recipe_id = ? AND tag_id = ?", r.ID, b.ID).First(&after).Error)
	assert.Equal(t, before.ID, after.ID)

	require.NoError(t, repo.RemoveAmounts(r.ID, []AmountKey{{salt.ID, 5}}))
	require.NoError(t, repo.AddAmounts(r.ID, []AmountKey{{salt.ID, 7}}))
	keys, err := repo.AmountKeys(r.ID)
	require.NoError(t, err)
	assert.Equal(t, []AmountKey{{salt.ID, 7}}, keys)
}
