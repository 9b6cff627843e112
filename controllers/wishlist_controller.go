package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ayush-roy-21/RoyElegance/database"
	"github.com/ayush-roy-21/RoyElegance/middleware"
)

type WishlistController struct {
	users    *mongo.Collection
	products *mongo.Collection
}

func NewWishlistController(db *database.Collections) *WishlistController {
	return &WishlistController{
		users:    db.Users,
		products: db.Products,
	}
}

// fetchWishlist joins the user's wishlist references with product summaries.
func (wc *WishlistController) fetchWishlist(ctx context.Context, ids []primitive.ObjectID) ([]bson.M, error) {
	if len(ids) == 0 {
		return []bson.M{}, nil
	}
	cursor, err := wc.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	items := []bson.M{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (wc *WishlistController) Get(c *gin.Context) {
	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := wc.fetchWishlist(ctx, user.Wishlist)
	if err != nil {
		respondServerError(c, "get wishlist", err)
		return
	}

	respondData(c, http.StatusOK, items)
}

func (wc *WishlistController) Add(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := wc.products.FindOne(ctx, bson.M{"_id": productID}).Err(); err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	for _, id := range user.Wishlist {
		if id == productID {
			respondError(c, http.StatusBadRequest, "Product already in wishlist")
			return
		}
	}

	// $addToSet keeps the list duplicate-free even if two adds race.
	_, err = wc.users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$addToSet": bson.M{"wishlist": productID},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		respondServerError(c, "add to wishlist", err)
		return
	}

	items, err := wc.fetchWishlist(ctx, append(user.Wishlist, productID))
	if err != nil {
		respondServerError(c, "add to wishlist", err)
		return
	}

	respondMessage(c, http.StatusOK, "Product added to wishlist successfully", items)
}

func (wc *WishlistController) Remove(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	_, err = wc.users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
		"$pull": bson.M{"wishlist": productID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		respondServerError(c, "remove from wishlist", err)
		return
	}

	remaining := make([]primitive.ObjectID, 0, len(user.Wishlist))
	for _, id := range user.Wishlist {
		if id != productID {
			remaining = append(remaining, id)
		}
	}

	items, err := wc.fetchWishlist(ctx, remaining)
	if err != nil {
		respondServerError(c, "remove from wishlist", err)
		return
	}

	respondMessage(c, http.StatusOK, "Product removed from wishlist successfully", items)
}
