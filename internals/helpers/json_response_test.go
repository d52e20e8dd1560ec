package helper

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pagingFor(t *testing.T, query string) Paging {
	t.Helper()
	var got Paging
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 200)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
	require.NoError(t, err)
	return got
}

func TestResolvePaging(t *testing.T) {
	assert.Equal(t, Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}, pagingFor(t, ""))
	assert.Equal(t, Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}, pagingFor(t, "?page=3&per_page=10"))
	assert.Equal(t, Paging{Page: 2, PerPage: 5, Offset: 5, Limit: 5}, pagingFor(t, "?page=2&limit=5"))
	assert.Equal(t, 200, pagingFor(t, "?per_page=5000").PerPage)
	assert.Equal(t, 1, pagingFor(t, "?page=-4").Page)

	for _, q := range []string{"?page=500000000000000000", "?page=99999999999999999999999&per_page=7"} {
		p := pagingFor(t, q)
		assert.GreaterOrEqual(t, p.Offset, 0, q)
		assert.LessOrEqual(t, p.Offset, math.MaxInt-p.PerPage+1, q)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(45, Paging{Page: 2, PerPage: 20}, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := BuildPagination(0, Paging{Page: 1, PerPage: 20}, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestStatusToErrorCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", statusToErrorCode(fiber.StatusNotFound))
	assert.Equal(t, "TOO_MANY_REQUESTS", statusToErrorCode(fiber.StatusTooManyRequests))
	assert.Equal(t, "INTERNAL_ERROR", statusToErrorCode(fiber.StatusBadGateway))
	assert.Equal(t, "ERROR", statusToErrorCode(fiber.StatusTeapot))
}
