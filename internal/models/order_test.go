// internal/models/order_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderTotals(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{ProductTitle: "Runner", UnitPrice: 1000, Quantity: 2},
			{ProductTitle: "Trail", UnitPrice: 2500, Quantity: 1},
		},
	}

	assert.Equal(t, int64(4500), order.TotalPrice())
	assert.Equal(t, 3, order.TotalQuantity())
}

func TestOrderTotalsEmpty(t *testing.T) {
	order := &Order{}

	assert.Equal(t, int64(0), order.TotalPrice())
	assert.Equal(t, 0, order.TotalQuantity())
}

func TestOrderItemLineTotal(t *testing.T) {
	item := &OrderItem{UnitPrice: 1999, Quantity: 3}
	assert.Equal(t, int64(5997), item.LineTotal())

	empty := &OrderItem{UnitPrice: 1999}
	assert.Equal(t, int64(0), empty.LineTotal())
}

func TestProductFirstImageURL(t *testing.T) {
	product := &Product{}
	assert.Equal(t, PlaceholderImageURL, product.FirstImageURL())

	product.Images = []GalleryImage{
		{URL: "https://cdn.example.com/a.jpg"},
		{URL: "https://cdn.example.com/b.jpg"},
	}
	assert.Equal(t, "https://cdn.example.com/a.jpg", product.FirstImageURL())
}

func TestProductInStock(t *testing.T) {
	assert.False(t, (&Product{Quantity: 0}).InStock())
	assert.True(t, (&Product{Quantity: 1}).InStock())
}

func TestProductSizeValid(t *testing.T) {
	for _, size := range ProductSizes {
		assert.True(t, size.Valid(), "size %s should be valid", size)
	}
	assert.False(t, ProductSize("38").Valid())
	assert.False(t, ProductSize("").Valid())
}

func TestCartActionValid(t *testing.T) {
	assert.True(t, CartActionIncrement.Valid())
	assert.True(t, CartActionDecrement.Valid())
	assert.True(t, CartActionSet.Valid())
	assert.False(t, CartAction("remove").Valid())
}

func TestCategoryIsTopLevel(t *testing.T) {
	top := &Category{}
	assert.True(t, top.IsTopLevel())

	parentID := top.ID
	sub := &Category{ParentID: &parentID}
	assert.False(t, sub.IsTopLevel())
}
