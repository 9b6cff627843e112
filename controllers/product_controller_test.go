package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestBuildProductFilterEmpty(t *testing.T) {
	filter := buildProductFilter(listQuery{})
	assert.Empty(t, filter)
}

func TestBuildProductFilterCategory(t *testing.T) {
	catID := primitive.NewObjectID()
	filter := buildProductFilter(listQuery{Category: catID.Hex()})
	assert.Equal(t, catID, filter["category"])
}

func TestBuildProductFilterSearch(t *testing.T) {
	filter := buildProductFilter(listQuery{Search: "kurti"})

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)

	name := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, "kurti", name.Pattern)
	assert.Equal(t, "i", name.Options)
}

func TestBuildProductFilterSearchQuotesMetaCharacters(t *testing.T) {
	filter := buildProductFilter(listQuery{Search: "a.b*"})

	or := filter["$or"].(bson.A)
	name := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, `a\.b\*`, name.Pattern)
}

func TestBuildProductFilterPriceRange(t *testing.T) {
	filter := buildProductFilter(listQuery{MinPrice: floatPtr(100), MaxPrice: floatPtr(500)})
	assert.Equal(t, bson.M{"$gte": 100.0, "$lte": 500.0}, filter["price"])

	filter = buildProductFilter(listQuery{MinPrice: floatPtr(100)})
	assert.Equal(t, bson.M{"$gte": 100.0}, filter["price"])

	filter = buildProductFilter(listQuery{MaxPrice: floatPtr(500)})
	assert.Equal(t, bson.M{"$lte": 500.0}, filter["price"])
}

func TestBuildProductFilterInStock(t *testing.T) {
	filter := buildProductFilter(listQuery{InStock: boolPtr(true)})
	assert.Equal(t, bson.M{"$gt": 0}, filter["stockQuantity"])

	filter = buildProductFilter(listQuery{InStock: boolPtr(false)})
	assert.Equal(t, bson.M{"$lte": 0}, filter["stockQuantity"])

	filter = buildProductFilter(listQuery{})
	assert.NotContains(t, filter, "stockQuantity")
}

func TestSortSpec(t *testing.T) {
	tests := []struct {
		sort  string
		field string
		order int
	}{
		{"price_asc", "price", 1},
		{"price_desc", "price", -1},
		{"name_asc", "name", 1},
		{"name_desc", "name", -1},
		{"oldest", "createdAt", 1},
		{"newest", "createdAt", -1},
		{"", "createdAt", -1},
	}
	for _, tt := range tests {
		t.Run("sort="+tt.sort, func(t *testing.T) {
			spec := sortSpec(tt.sort)
			require.Len(t, spec, 1)
			assert.Equal(t, tt.field, spec[0].Key)
			assert.Equal(t, tt.order, spec[0].Value)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := newPagination(1, 12, 30)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(30), p.TotalProducts)
	assert.True(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)

	p = newPagination(3, 12, 30)
	assert.False(t, p.HasNextPage)
	assert.True(t, p.HasPrevPage)

	p = newPagination(1, 12, 0)
	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)

	p = newPagination(1, 12, 12)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNextPage)
}

func TestListQueryBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bind := func(rawQuery string) (listQuery, error) {
		var q listQuery
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/api/products?"+rawQuery, nil)
		err := c.ShouldBindQuery(&q)
		return q, err
	}

	q, err := bind("")
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, defaultPageSize, q.Limit)

	q, err = bind("page=2&limit=50&sort=price_asc")
	require.NoError(t, err)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 50, q.Limit)
	assert.Equal(t, "price_asc", q.Sort)

	_, err = bind("limit=101")
	assert.Error(t, err, "limit above 100 must be rejected")

	_, err = bind("page=0")
	assert.Error(t, err)

	_, err = bind("sort=bogus")
	assert.Error(t, err)

	_, err = bind("minPrice=-5")
	assert.Error(t, err)
}
