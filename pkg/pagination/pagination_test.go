package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ParseParams(c)
}

func TestParseParams_Defaults(t *testing.T) {
	p := paramsFor(t, "")
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, DefaultOffset, p.Offset)
}

func TestParseParams_Explicit(t *testing.T) {
	p := paramsFor(t, "limit=5&offset=40")
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, 40, p.Offset)
}

func TestParseParams_ClampsOutOfRange(t *testing.T) {
	p := paramsFor(t, "limit=1000&offset=-3")
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, DefaultOffset, p.Offset)

	p = paramsFor(t, "limit=0")
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(20, 40, 101)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 40, meta.Offset)
	assert.Equal(t, int64(101), meta.Total)
	assert.Equal(t, 6, meta.TotalPages)
}

func TestHasMore(t *testing.T) {
	assert.True(t, HasMore(0, 20, 21))
	assert.False(t, HasMore(0, 20, 20))
	assert.False(t, HasMore(20, 20, 15))
}
