package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = params
	return c, w
}

func TestParseID(t *testing.T) {
	c, _ := newContext("/", gin.Params{{Key: "id", Value: "42"}})
	id, ok := parseID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"abc", "0", "-1", ""} {
		c, w := newContext("/", gin.Params{{Key: "id", Value: raw}})
		_, ok := parseID(c, "id")
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusNotFound, w.Code, raw)
	}
}

func TestQueryInt(t *testing.T) {
	c, _ := newContext("/?recipes_limit=3&bad=x", nil)
	assert.Equal(t, 3, queryInt(c, "recipes_limit", 0))
	assert.Equal(t, 7, queryInt(c, "bad", 7))
	assert.Equal(t, 0, queryInt(c, "missing", 0))
}

func TestActorFromAnonymous(t *testing.T) {
	c, _ := newContext("/", nil)
	assert.Nil(t, actorFrom(c))

	c.Set("user_id", uint(5))
	c.Set("is_admin", true)
	actor := actorFrom(c)
	if assert.NotNil(t, actor) {
		assert.Equal(t, uint(5), actor.UserID)
		assert.True(t, actor.IsAdmin)
	}
}
