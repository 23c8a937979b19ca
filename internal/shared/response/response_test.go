package response_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"go-cpq/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("first page", func(t *testing.T) {
		got, meta := response.Paginate(items, 1, 2)
		assert.Equal(t, []int{1, 2}, got)
		assert.Equal(t, int64(5), meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("last partial page", func(t *testing.T) {
		got, _ := response.Paginate(items, 3, 2)
		assert.Equal(t, []int{5}, got)
	})

	t.Run("past the end", func(t *testing.T) {
		got, meta := response.Paginate(items, 4, 2)
		assert.Empty(t, got)
		assert.Equal(t, 4, meta.Page)
	})

	t.Run("huge page does not overflow", func(t *testing.T) {
		assert.NotPanics(t, func() {
			got, _ := response.Paginate([]int{1, 2, 3}, math.MaxInt64, 200)
			assert.Empty(t, got)
		})
	})

	t.Run("empty list", func(t *testing.T) {
		got, meta := response.Paginate([]int{}, 1, 10)
		assert.Empty(t, got)
		assert.Equal(t, 0, meta.TotalPages)
	})
}

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, tc := range []struct {
		query    string
		page     int
		pageSize int
	}{
		{"", 1, 10},
		{"?page=3&pageSize=25", 3, 25},
		{"?page=0&page_size=500", 1, 200},
		{"?page=" + strconv.FormatInt(math.MaxInt64, 10), math.MaxInt64, 10},
	} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/items"+tc.query, nil)

		page, pageSize := response.PageParams(c)
		assert.Equal(t, tc.page, page, tc.query)
		assert.Equal(t, tc.pageSize, pageSize, tc.query)
	}
}
