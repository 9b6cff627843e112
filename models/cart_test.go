package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartFindVariant(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := Cart{Items: []CartItem{
		{ID: primitive.NewObjectID(), Product: productID, Quantity: 1, Size: "M", Color: "Pink"},
		{ID: primitive.NewObjectID(), Product: productID, Quantity: 2, Size: "L", Color: "Pink"},
	}}

	assert.Equal(t, 0, cart.FindVariant(productID, "M", "Pink"))
	assert.Equal(t, 1, cart.FindVariant(productID, "L", "Pink"))

	// Any difference in the {product, size, color} triple is a new line.
	assert.Equal(t, -1, cart.FindVariant(productID, "M", "White"))
	assert.Equal(t, -1, cart.FindVariant(productID, "S", "Pink"))
	assert.Equal(t, -1, cart.FindVariant(primitive.NewObjectID(), "M", "Pink"))
}

func TestCartFindItem(t *testing.T) {
	first := CartItem{ID: primitive.NewObjectID(), Product: primitive.NewObjectID(), Quantity: 1}
	second := CartItem{ID: primitive.NewObjectID(), Product: primitive.NewObjectID(), Quantity: 2}
	cart := Cart{Items: []CartItem{first, second}}

	assert.Equal(t, 0, cart.FindItem(first.ID))
	assert.Equal(t, 1, cart.FindItem(second.ID))
	assert.Equal(t, -1, cart.FindItem(primitive.NewObjectID()))
}

func TestAverageOf(t *testing.T) {
	assert.Equal(t, 0.0, AverageOf(nil))
	assert.Equal(t, 4.0, AverageOf([]Review{{Rating: 4}}))
	assert.Equal(t, 3.5, AverageOf([]Review{{Rating: 3}, {Rating: 4}, {Rating: 5}, {Rating: 2}}))
}
