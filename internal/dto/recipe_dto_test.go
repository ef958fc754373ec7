package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipeFilterFlags(t *testing.T) {
	cases := []struct {
		raw  string
		want *bool
	}{
		{"", nil},
		{"is_favorited=1", boolPtr(true)},
		{"is_favorited=true", boolPtr(true)},
		{"is_favorited=yes", boolPtr(true)},
		{"is_favorited=0", boolPtr(false)},
		{"is_favorited=false", boolPtr(false)},
		{"is_favorited=False", boolPtr(false)},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			values, err := url.ParseQuery(tc.raw)
			require.NoError(t, err)
			got := ParseRecipeFilter(values)
			assert.Equal(t, tc.want, got.IsFavorited)
			assert.Nil(t, got.IsInShoppingCart)
		})
	}
}

func TestParseRecipeFilterTagsAndAuthor(t *testing.T) {
	values, err := url.ParseQuery("tags=breakfast&tags=lunch&tags=&author=7&is_in_shopping_cart=1")
	require.NoError(t, err)

	got := ParseRecipeFilter(values)
	assert.Equal(t, []string{"breakfast", "lunch"}, got.Tags)
	assert.Equal(t, "7", got.Author)
	require.NotNil(t, got.IsInShoppingCart)
	assert.True(t, *got.IsInShoppingCart)
}

func boolPtr(b bool) *bool {
	return &b
}
