package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush-roy-21/RoyElegance/models"
)

func product(name string, price float64, stock int) models.Product {
	return models.Product{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Price:         price,
		StockQuantity: stock,
	}
}

func productMap(products ...models.Product) map[primitive.ObjectID]models.Product {
	m := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func TestBuildOrderItems(t *testing.T) {
	kurti := product("Floral Kurti", 500, 3)
	scarf := product("Silk Scarf", 250, 10)
	products := productMap(kurti, scarf)

	items := []models.CartItem{
		{ID: primitive.NewObjectID(), Product: kurti.ID, Quantity: 2, Size: "M", Color: "Pink"},
		{ID: primitive.NewObjectID(), Product: scarf.ID, Quantity: 1},
	}

	orderItems, subtotal, totalItems, err := buildOrderItems(items, products)
	require.NoError(t, err)
	require.Len(t, orderItems, 2)

	assert.Equal(t, 1250.0, subtotal)
	assert.Equal(t, 3, totalItems)

	assert.Equal(t, kurti.ID, orderItems[0].Product)
	assert.Equal(t, "Floral Kurti", orderItems[0].Name)
	assert.Equal(t, 500.0, orderItems[0].Price)
	assert.Equal(t, 2, orderItems[0].Quantity)
	assert.Equal(t, "M", orderItems[0].Size)
	assert.Equal(t, "Pink", orderItems[0].Color)
	assert.Equal(t, 1000.0, orderItems[0].Total)
}

func TestBuildOrderItemsInsufficientStock(t *testing.T) {
	kurti := product("Floral Kurti", 500, 1)
	items := []models.CartItem{
		{ID: primitive.NewObjectID(), Product: kurti.ID, Quantity: 2},
	}

	_, _, _, err := buildOrderItems(items, productMap(kurti))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient stock for Floral Kurti")
}

func TestBuildOrderItemsMissingProduct(t *testing.T) {
	items := []models.CartItem{
		{ID: primitive.NewObjectID(), Product: primitive.NewObjectID(), Quantity: 1},
	}

	_, _, _, err := buildOrderItems(items, productMap())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Product not found")
}

func TestBuildOrderItemsQuantityEqualToStock(t *testing.T) {
	kurti := product("Floral Kurti", 500, 3)
	items := []models.CartItem{
		{ID: primitive.NewObjectID(), Product: kurti.ID, Quantity: 3},
	}

	orderItems, subtotal, totalItems, err := buildOrderItems(items, productMap(kurti))
	require.NoError(t, err)
	assert.Len(t, orderItems, 1)
	assert.Equal(t, 1500.0, subtotal)
	assert.Equal(t, 3, totalItems)
}

func TestCartTotals(t *testing.T) {
	kurti := product("Floral Kurti", 500, 3)
	items := []models.CartItem{
		{ID: primitive.NewObjectID(), Product: kurti.ID, Quantity: 2},
	}

	views, subtotal, totalItems := cartTotals(items, productMap(kurti))
	require.Len(t, views, 1)
	assert.Equal(t, 1000.0, subtotal)
	assert.Equal(t, 2, totalItems)
}

func TestCartTotalsSkipsVanishedProducts(t *testing.T) {
	kurti := product("Floral Kurti", 500, 3)
	items := []models.CartItem{
		{ID: primitive.NewObjectID(), Product: kurti.ID, Quantity: 1},
		{ID: primitive.NewObjectID(), Product: primitive.NewObjectID(), Quantity: 5},
	}

	views, subtotal, totalItems := cartTotals(items, productMap(kurti))
	// Vanished products stay visible in the view but contribute nothing.
	assert.Len(t, views, 2)
	assert.Equal(t, 500.0, subtotal)
	assert.Equal(t, 1, totalItems)
}

func TestCheckoutScenarioTotals(t *testing.T) {
	// Cart with product P (price 500, stock 3) x2, no coupon:
	// subtotal 1000, shipping 0, total 1000.
	p := product("P", 500, 3)
	items := []models.CartItem{
		{ID: primitive.NewObjectID(), Product: p.ID, Quantity: 2},
	}

	_, subtotal, totalItems, err := buildOrderItems(items, productMap(p))
	require.NoError(t, err)

	shipping := shippingFor(subtotal)
	discount := discountFor("", subtotal)

	assert.Equal(t, 1000.0, subtotal)
	assert.Equal(t, 0.0, shipping)
	assert.Equal(t, 0.0, discount)
	assert.Equal(t, 1000.0, subtotal+shipping-discount)
	assert.Equal(t, 2, totalItems)
}
