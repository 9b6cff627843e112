// Seeds the catalog with the sample kurti collection. Safe to re-run: it
// refuses to touch a non-empty products collection.
package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayush-roy-21/RoyElegance/config"
	"github.com/ayush-roy-21/RoyElegance/database"
	"github.com/ayush-roy-21/RoyElegance/models"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb: ", err)
	}
	defer client.Disconnect(ctx)

	count, err := db.Products.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatal("count products: ", err)
	}
	if count > 0 {
		log.Printf("products collection already has %d documents, nothing to do", count)
		return
	}

	now := time.Now()
	category := models.Category{
		ID:          primitive.NewObjectID(),
		Name:        "Kurtis",
		Description: "Ethnic kurtis for every occasion",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := db.Categories.InsertOne(ctx, category); err != nil {
		log.Fatal("insert category: ", err)
	}

	products := sampleProducts(category.ID, now)
	docs := make([]interface{}, len(products))
	for i, p := range products {
		docs[i] = p
	}
	if _, err := db.Products.InsertMany(ctx, docs); err != nil {
		log.Fatal("insert products: ", err)
	}

	log.Printf("seeded %d products in category %q", len(products), category.Name)
}

func sampleProducts(category primitive.ObjectID, now time.Time) []models.Product {
	base := models.Product{
		Category:  category,
		Reviews:   []models.Review{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	product := func(name, description string, price float64, stock int, featured bool, tags, sizes, colors, images []string) models.Product {
		p := base
		p.ID = primitive.NewObjectID()
		p.Name = name
		p.Description = description
		p.Price = price
		p.StockQuantity = stock
		p.Featured = featured
		p.Tags = tags
		p.Sizes = sizes
		p.Colors = colors
		p.Images = images
		return p
	}

	return []models.Product{
		product("Floral Embroidered Kurti",
			"Elegant floral embroidery on soft cotton fabric. Perfect for festive and casual occasions.",
			1299, 20, true,
			[]string{"floral", "embroidered", "cotton", "festive"},
			[]string{"S", "M", "L", "XL"},
			[]string{"Pink", "White"},
			[]string{"https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?auto=format&fit=crop&w=500&q=80"}),
		product("Silk Anarkali Kurti",
			"Luxurious silk Anarkali with golden zari work. A timeless classic for special events.",
			1599, 15, false,
			[]string{"silk", "anarkali", "zari", "party"},
			[]string{"M", "L", "XL"},
			[]string{"Blue", "Gold"},
			[]string{"https://images.unsplash.com/photo-1594633312681-425c7b97ccd1?auto=format&fit=crop&w=500&q=80"}),
		product("Cotton Printed Kurti",
			"Breathable cotton kurti with vibrant prints. Ideal for daily wear and summer comfort.",
			899, 30, false,
			[]string{"cotton", "printed", "casual", "summer"},
			[]string{"S", "M", "L"},
			[]string{"Yellow", "Green"},
			[]string{"https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?auto=format&fit=crop&w=500&q=80"}),
		product("Designer Embroidered Kurti",
			"Premium designer kurti with intricate embroidery and modern silhouette.",
			2199, 10, true,
			[]string{"designer", "embroidered", "premium"},
			[]string{"M", "L", "XL", "XXL"},
			[]string{"Red", "Black"},
			[]string{"https://images.unsplash.com/photo-1594633312681-425c7b97ccd1?auto=format&fit=crop&w=500&q=80"}),
	}
}
