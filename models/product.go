package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	User    primitive.ObjectID `bson:"user" json:"user"`
	Rating  int                `bson:"rating" json:"rating"`
	Comment string             `bson:"comment" json:"comment"`
	Date    time.Time          `bson:"date" json:"date"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	Images        []string           `bson:"images" json:"images"`
	Tags          []string           `bson:"tags" json:"tags"`
	Category      primitive.ObjectID `bson:"category" json:"category"`
	StockQuantity int                `bson:"stockQuantity" json:"stockQuantity"`
	Featured      bool               `bson:"featured" json:"featured"`
	Sizes         []string           `bson:"sizes" json:"sizes"`
	Colors        []string           `bson:"colors" json:"colors"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	AverageRating float64            `bson:"averageRating" json:"averageRating"`
	SalesCount    int                `bson:"salesCount" json:"salesCount"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AverageOf recomputes the arithmetic mean over a review set. Kept on the
// model so review insertion and tests share one definition.
func AverageOf(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}
