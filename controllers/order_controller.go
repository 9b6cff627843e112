package controllers

import (
	"context"
	"net/http"
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

// OrderController serves the read-only order history. Orders are written by
// checkout only and never mutated afterwards.
type OrderController struct {
	orders *mongo.Collection
}

func NewOrderController(db *database.Collections) *OrderController {
	return &OrderController{orders: db.Orders}
}

func (oc *OrderController) List(c *gin.Context) {
	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := oc.orders.Find(ctx, bson.M{"user": user.ID}, opts)
	if err != nil {
		respondServerError(c, "get orders", err)
		return
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		respondServerError(c, "get orders", err)
		return
	}

	respondData(c, http.StatusOK, orders)
}

func (oc *OrderController) Get(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Order not found")
		return
	}

	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	if err := oc.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Order not found")
			return
		}
		respondServerError(c, "get order", err)
		return
	}

	if order.User != user.ID {
		respondError(c, http.StatusForbidden, "Not authorized to view this order")
		return
	}

	respondData(c, http.StatusOK, order)
}
