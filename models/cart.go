package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Size     string             `bson:"size,omitempty" json:"size,omitempty"`
	Color    string             `bson:"color,omitempty" json:"color,omitempty"`
}

// Matches reports whether the line holds the same product variant. Cart
// lines are keyed on the {product, size, color} triple: adding the same
// variant twice merges quantities instead of appending a new line.
func (i CartItem) Matches(product primitive.ObjectID, size, color string) bool {
	return i.Product == product && i.Size == size && i.Color == color
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FindItem returns the index of the line with the given id, or -1.
func (c *Cart) FindItem(itemID primitive.ObjectID) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// FindVariant returns the index of the line matching the variant triple, or -1.
func (c *Cart) FindVariant(product primitive.ObjectID, size, color string) int {
	for i, item := range c.Items {
		if item.Matches(product, size, color) {
			return i
		}
	}
	return -1
}
