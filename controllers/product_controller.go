package controllers

import (
	"context"
	"math"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush-roy-21/RoyElegance/database"
	"github.com/ayush-roy-21/RoyElegance/middleware"
	"github.com/ayush-roy-21/RoyElegance/models"
)

const (
	defaultPageSize  = 12
	maxPageSize      = 100
	featuredLimit    = 8
	trendingLimit    = 6
	suggestionsLimit = 5
)

type ProductController struct {
	products   *mongo.Collection
	categories *mongo.Collection
}

func NewProductController(db *database.Collections) *ProductController {
	return &ProductController{
		products:   db.Products,
		categories: db.Categories,
	}
}

type listQuery struct {
	Page     int      `form:"page,default=1" binding:"min=1"`
	Limit    int      `form:"limit,default=12" binding:"min=1,max=100"`
	Category string   `form:"category"`
	Search   string   `form:"search"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	Sort     string   `form:"sort" binding:"omitempty,oneof=price_asc price_desc name_asc name_desc newest oldest"`
	InStock  *bool    `form:"inStock"`
}

// buildProductFilter translates the list query into a bson filter. The search
// term matches name, description and tags as a case-insensitive substring.
func buildProductFilter(q listQuery) bson.M {
	filter := bson.M{}

	if q.Category != "" {
		if catID, err := primitive.ObjectIDFromHex(q.Category); err == nil {
			filter["category"] = catID
		} else {
			filter["category"] = q.Category
		}
	}

	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"tags": pattern},
		}
	}

	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}

	if q.InStock != nil {
		if *q.InStock {
			filter["stockQuantity"] = bson.M{"$gt": 0}
		} else {
			filter["stockQuantity"] = bson.M{"$lte": 0}
		}
	}

	return filter
}

func sortSpec(sort string) bson.D {
	switch sort {
	case "price_asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}
	case "name_asc":
		return bson.D{{Key: "name", Value: 1}}
	case "name_desc":
		return bson.D{{Key: "name", Value: -1}}
	case "oldest":
		return bson.D{{Key: "createdAt", Value: 1}}
	default: // newest
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

type pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalProducts int64 `json:"totalProducts"`
	HasNextPage   bool  `json:"hasNextPage"`
	HasPrevPage   bool  `json:"hasPrevPage"`
}

func newPagination(page, limit int, total int64) pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProducts: total,
		HasNextPage:   page < totalPages,
		HasPrevPage:   page > 1,
	}
}

func (pc *ProductController) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := buildProductFilter(q)

	opts := options.Find().
		SetSort(sortSpec(q.Sort)).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := pc.products.Find(ctx, filter, opts)
	if err != nil {
		respondServerError(c, "get products", err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		respondServerError(c, "get products", err)
		return
	}

	total, err := pc.products.CountDocuments(ctx, filter)
	if err != nil {
		respondServerError(c, "get products", err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"products":   products,
		"pagination": newPagination(q.Page, q.Limit, total),
	})
}

func (pc *ProductController) GetByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := pc.products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	respondData(c, http.StatusOK, product)
}

type productInput struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Price         *float64 `json:"price" binding:"required,gte=0"`
	Category      string   `json:"category" binding:"required"`
	StockQuantity *int     `json:"stockQuantity" binding:"required,gte=0"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Featured      bool     `json:"featured"`
}

func (pc *ProductController) categoryExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := pc.categories.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (pc *ProductController) Create(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	catID, err := primitive.ObjectIDFromHex(input.Category)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Category not found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	exists, err := pc.categoryExists(ctx, catID)
	if err != nil {
		respondServerError(c, "create product", err)
		return
	}
	if !exists {
		respondError(c, http.StatusBadRequest, "Category not found")
		return
	}

	now := time.Now()
	product := models.Product{
		ID:            primitive.NewObjectID(),
		Name:          input.Name,
		Description:   input.Description,
		Price:         *input.Price,
		Images:        orEmpty(input.Images),
		Tags:          orEmpty(input.Tags),
		Category:      catID,
		StockQuantity: *input.StockQuantity,
		Featured:      input.Featured,
		Sizes:         orEmpty(input.Sizes),
		Colors:        orEmpty(input.Colors),
		Reviews:       []models.Review{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := pc.products.InsertOne(ctx, product); err != nil {
		respondServerError(c, "create product", err)
		return
	}

	respondMessage(c, http.StatusCreated, "Product created successfully", product)
}

func (pc *ProductController) Update(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	var input struct {
		Name          *string  `json:"name"`
		Description   *string  `json:"description"`
		Price         *float64 `json:"price" binding:"omitempty,gte=0"`
		Category      *string  `json:"category"`
		StockQuantity *int     `json:"stockQuantity" binding:"omitempty,gte=0"`
		Images        []string `json:"images"`
		Tags          []string `json:"tags"`
		Sizes         []string `json:"sizes"`
		Colors        []string `json:"colors"`
		Featured      *bool    `json:"featured"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		update["name"] = *input.Name
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.Price != nil {
		update["price"] = *input.Price
	}
	if input.StockQuantity != nil {
		update["stockQuantity"] = *input.StockQuantity
	}
	if input.Images != nil {
		update["images"] = input.Images
	}
	if input.Tags != nil {
		update["tags"] = input.Tags
	}
	if input.Sizes != nil {
		update["sizes"] = input.Sizes
	}
	if input.Colors != nil {
		update["colors"] = input.Colors
	}
	if input.Featured != nil {
		update["featured"] = *input.Featured
	}
	if input.Category != nil {
		catID, err := primitive.ObjectIDFromHex(*input.Category)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Category not found")
			return
		}
		exists, err := pc.categoryExists(ctx, catID)
		if err != nil {
			respondServerError(c, "update product", err)
			return
		}
		if !exists {
			respondError(c, http.StatusBadRequest, "Category not found")
			return
		}
		update["category"] = catID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = pc.products.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondServerError(c, "update product", err)
		return
	}

	respondMessage(c, http.StatusOK, "Product updated successfully", updated)
}

func (pc *ProductController) Delete(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := pc.products.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		respondServerError(c, "delete product", err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	respondMessage(c, http.StatusOK, "Product deleted successfully", nil)
}

func (pc *ProductController) Categories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := pc.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		respondServerError(c, "get categories", err)
		return
	}

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		respondServerError(c, "get categories", err)
		return
	}

	respondData(c, http.StatusOK, categories)
}

func (pc *ProductController) Featured(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"featured": true, "stockQuantity": bson.M{"$gt": 0}}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(featuredLimit)

	cursor, err := pc.products.Find(ctx, filter, opts)
	if err != nil {
		respondServerError(c, "get featured products", err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		respondServerError(c, "get featured products", err)
		return
	}

	respondData(c, http.StatusOK, products)
}

func (pc *ProductController) Trending(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"stockQuantity": bson.M{"$gt": 0}}
	opts := options.Find().
		SetSort(bson.D{{Key: "averageRating", Value: -1}, {Key: "salesCount", Value: -1}}).
		SetLimit(trendingLimit)

	cursor, err := pc.products.Find(ctx, filter, opts)
	if err != nil {
		respondServerError(c, "get trending products", err)
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		respondServerError(c, "get trending products", err)
		return
	}

	respondData(c, http.StatusOK, products)
}

func (pc *ProductController) SearchSuggestions(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		respondError(c, http.StatusBadRequest, "Search query is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"tags": pattern},
	}}
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "tags": 1}).
		SetLimit(suggestionsLimit)

	cursor, err := pc.products.Find(ctx, filter, opts)
	if err != nil {
		respondServerError(c, "search suggestions", err)
		return
	}

	suggestions := []bson.M{}
	if err := cursor.All(ctx, &suggestions); err != nil {
		respondServerError(c, "search suggestions", err)
		return
	}

	respondData(c, http.StatusOK, suggestions)
}

func (pc *ProductController) AddReview(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	var input struct {
		Rating  *int   `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := pc.products.FindOne(ctx, bson.M{"_id": objID}).Decode(&product); err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	for _, review := range product.Reviews {
		if review.User == user.ID {
			respondError(c, http.StatusBadRequest, "You have already reviewed this product")
			return
		}
	}

	review := models.Review{
		User:    user.ID,
		Rating:  *input.Rating,
		Comment: input.Comment,
		Date:    time.Now(),
	}
	reviews := append(product.Reviews, review)

	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set": bson.M{
			"averageRating": models.AverageOf(reviews),
			"updatedAt":     time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	if err := pc.products.FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&updated); err != nil {
		respondServerError(c, "add review", err)
		return
	}

	respondMessage(c, http.StatusOK, "Review added successfully", updated)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
