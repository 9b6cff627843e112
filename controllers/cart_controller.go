package controllers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ayush-roy-21/RoyElegance/database"
	"github.com/ayush-roy-21/RoyElegance/middleware"
	"github.com/ayush-roy-21/RoyElegance/models"
)

type CartController struct {
	carts    *mongo.Collection
	products *mongo.Collection
	orders   *mongo.Collection
}

func NewCartController(db *database.Collections) *CartController {
	return &CartController{
		carts:    db.Carts,
		products: db.Products,
		orders:   db.Orders,
	}
}

// loadCart fetches the user's cart, lazily creating an empty one.
func (cc *CartController) loadCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := cc.carts.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	now := time.Now()
	cart = models.Cart{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Items:     []models.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := cc.carts.InsertOne(ctx, cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// loadProducts batch-fetches the products referenced by the cart lines.
func (cc *CartController) loadProducts(ctx context.Context, items []models.CartItem) (map[primitive.ObjectID]models.Product, error) {
	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Product)
	}
	if len(ids) == 0 {
		return map[primitive.ObjectID]models.Product{}, nil
	}

	cursor, err := cc.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

func (cc *CartController) saveItems(ctx context.Context, cartID primitive.ObjectID, items []models.CartItem) error {
	_, err := cc.carts.UpdateOne(ctx, bson.M{"_id": cartID}, bson.M{"$set": bson.M{
		"items":     items,
		"updatedAt": time.Now(),
	}})
	return err
}

// cartTotals joins cart lines with current product data. Lines whose product
// has vanished are kept in the view but excluded from the totals, matching
// the unguarded category/product deletion behavior.
func cartTotals(items []models.CartItem, products map[primitive.ObjectID]models.Product) (viewItems []gin.H, subtotal float64, totalItems int) {
	viewItems = []gin.H{}
	for _, item := range items {
		view := gin.H{
			"id":       item.ID.Hex(),
			"quantity": item.Quantity,
			"size":     item.Size,
			"color":    item.Color,
		}
		if product, ok := products[item.Product]; ok {
			view["product"] = gin.H{
				"id":            product.ID.Hex(),
				"name":          product.Name,
				"price":         product.Price,
				"images":        product.Images,
				"stockQuantity": product.StockQuantity,
			}
			subtotal += product.Price * float64(item.Quantity)
			totalItems += item.Quantity
		}
		viewItems = append(viewItems, view)
	}
	return viewItems, subtotal, totalItems
}

func (cc *CartController) respondCart(c *gin.Context, message string, cart *models.Cart, products map[primitive.ObjectID]models.Product) {
	items, subtotal, totalItems := cartTotals(cart.Items, products)
	shipping := shippingFor(subtotal)
	data := gin.H{
		"items":      items,
		"subtotal":   subtotal,
		"shipping":   shipping,
		"total":      subtotal + shipping,
		"totalItems": totalItems,
	}
	if message == "" {
		respondData(c, http.StatusOK, data)
		return
	}
	respondMessage(c, http.StatusOK, message, data)
}

func (cc *CartController) Get(c *gin.Context) {
	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cart, err := cc.loadCart(ctx, user.ID)
	if err != nil {
		respondServerError(c, "get cart", err)
		return
	}

	products, err := cc.loadProducts(ctx, cart.Items)
	if err != nil {
		respondServerError(c, "get cart", err)
		return
	}

	cc.respondCart(c, "", cart, products)
}

func (cc *CartController) AddItem(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := cc.products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	if product.StockQuantity < input.Quantity {
		respondError(c, http.StatusBadRequest, "Insufficient stock available")
		return
	}

	cart, err := cc.loadCart(ctx, user.ID)
	if err != nil {
		respondServerError(c, "add to cart", err)
		return
	}

	// Same variant already in the cart merges quantities instead of
	// appending a second line.
	if idx := cart.FindVariant(productID, input.Size, input.Color); idx >= 0 {
		merged := cart.Items[idx].Quantity + input.Quantity
		if product.StockQuantity < merged {
			respondError(c, http.StatusBadRequest, "Insufficient stock available")
			return
		}
		cart.Items[idx].Quantity = merged
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ID:       primitive.NewObjectID(),
			Product:  productID,
			Quantity: input.Quantity,
			Size:     input.Size,
			Color:    input.Color,
		})
	}

	if err := cc.saveItems(ctx, cart.ID, cart.Items); err != nil {
		respondServerError(c, "add to cart", err)
		return
	}

	products, err := cc.loadProducts(ctx, cart.Items)
	if err != nil {
		respondServerError(c, "add to cart", err)
		return
	}

	cc.respondCart(c, "Item added to cart successfully", cart, products)
}

func (cc *CartController) UpdateItem(c *gin.Context) {
	itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Item not found in cart")
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.carts.FindOne(ctx, bson.M{"user": user.ID}).Decode(&cart); err != nil {
		respondError(c, http.StatusNotFound, "Cart not found")
		return
	}

	idx := cart.FindItem(itemID)
	if idx < 0 {
		respondError(c, http.StatusNotFound, "Item not found in cart")
		return
	}

	var product models.Product
	if err := cc.products.FindOne(ctx, bson.M{"_id": cart.Items[idx].Product}).Decode(&product); err != nil {
		respondError(c, http.StatusNotFound, "Product not found")
		return
	}

	if product.StockQuantity < input.Quantity {
		respondError(c, http.StatusBadRequest, "Insufficient stock available")
		return
	}

	// Overwrite, not increment.
	cart.Items[idx].Quantity = input.Quantity
	if err := cc.saveItems(ctx, cart.ID, cart.Items); err != nil {
		respondServerError(c, "update cart item", err)
		return
	}

	products, err := cc.loadProducts(ctx, cart.Items)
	if err != nil {
		respondServerError(c, "update cart item", err)
		return
	}

	cc.respondCart(c, "Cart updated successfully", &cart, products)
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	itemID, err := primitive.ObjectIDFromHex(c.Param("itemId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Item not found in cart")
		return
	}

	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.carts.FindOne(ctx, bson.M{"user": user.ID}).Decode(&cart); err != nil {
		respondError(c, http.StatusNotFound, "Cart not found")
		return
	}

	idx := cart.FindItem(itemID)
	if idx < 0 {
		respondError(c, http.StatusNotFound, "Item not found in cart")
		return
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	if err := cc.saveItems(ctx, cart.ID, cart.Items); err != nil {
		respondServerError(c, "remove cart item", err)
		return
	}

	products, err := cc.loadProducts(ctx, cart.Items)
	if err != nil {
		respondServerError(c, "remove cart item", err)
		return
	}

	cc.respondCart(c, "Item removed from cart successfully", &cart, products)
}

func (cc *CartController) Clear(c *gin.Context) {
	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.carts.FindOne(ctx, bson.M{"user": user.ID}).Decode(&cart); err != nil {
		respondError(c, http.StatusNotFound, "Cart not found")
		return
	}

	if err := cc.saveItems(ctx, cart.ID, []models.CartItem{}); err != nil {
		respondServerError(c, "clear cart", err)
		return
	}

	respondMessage(c, http.StatusOK, "Cart cleared successfully", nil)
}

// buildOrderItems validates every line against current stock and produces the
// denormalized order snapshot. Fails naming the first offending product, so a
// checkout aborts before any write.
func buildOrderItems(items []models.CartItem, products map[primitive.ObjectID]models.Product) ([]models.OrderItem, float64, int, error) {
	orderItems := make([]models.OrderItem, 0, len(items))
	var subtotal float64
	var totalItems int

	for _, item := range items {
		product, ok := products[item.Product]
		if !ok {
			return nil, 0, 0, fmt.Errorf("Product not found")
		}
		if product.StockQuantity < item.Quantity {
			return nil, 0, 0, fmt.Errorf("Insufficient stock for %s", product.Name)
		}

		lineTotal := product.Price * float64(item.Quantity)
		subtotal += lineTotal
		totalItems += item.Quantity
		orderItems = append(orderItems, models.OrderItem{
			Product:  product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Quantity: item.Quantity,
			Size:     item.Size,
			Color:    item.Color,
			Total:    lineTotal,
		})
	}

	return orderItems, subtotal, totalItems, nil
}

// decrementStock atomically takes quantity units out of the product's stock
// and counts the sale. The filter makes the decrement conditional: a
// concurrent checkout that drained the stock first leaves nothing to match,
// and the caller sees ModifiedCount zero instead of negative inventory.
func (cc *CartController) decrementStock(ctx context.Context, productID primitive.ObjectID, quantity int) (bool, error) {
	result, err := cc.products.UpdateOne(ctx,
		bson.M{"_id": productID, "stockQuantity": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"stockQuantity": -quantity, "salesCount": quantity}},
	)
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0, nil
}

// restoreStock compensates decrements already applied when a later step of
// checkout fails.
func (cc *CartController) restoreStock(ctx context.Context, applied []models.OrderItem) {
	for _, item := range applied {
		_, _ = cc.products.UpdateOne(ctx,
			bson.M{"_id": item.Product},
			bson.M{"$inc": bson.M{"stockQuantity": item.Quantity, "salesCount": -item.Quantity}},
		)
	}
}

func (cc *CartController) Checkout(c *gin.Context) {
	var input struct {
		ShippingAddress string `json:"shippingAddress" binding:"required"`
		PaymentMethod   string `json:"paymentMethod" binding:"required,oneof=cod online"`
		CouponCode      string `json:"couponCode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var cart models.Cart
	err := cc.carts.FindOne(ctx, bson.M{"user": user.ID}).Decode(&cart)
	if err != nil || len(cart.Items) == 0 {
		respondError(c, http.StatusBadRequest, "Cart is empty")
		return
	}

	products, err := cc.loadProducts(ctx, cart.Items)
	if err != nil {
		respondServerError(c, "checkout", err)
		return
	}

	orderItems, subtotal, totalItems, err := buildOrderItems(cart.Items, products)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	shipping := shippingFor(subtotal)
	discount := discountFor(input.CouponCode, subtotal)
	total := subtotal + shipping - discount

	// Take the stock line by line. Each decrement is conditional on enough
	// stock remaining, so a race with another checkout fails cleanly here
	// rather than overselling; already-applied decrements are compensated.
	applied := make([]models.OrderItem, 0, len(orderItems))
	for _, item := range orderItems {
		ok, err := cc.decrementStock(ctx, item.Product, item.Quantity)
		if err != nil {
			cc.restoreStock(ctx, applied)
			respondServerError(c, "checkout", err)
			return
		}
		if !ok {
			cc.restoreStock(ctx, applied)
			respondError(c, http.StatusBadRequest, fmt.Sprintf("Insufficient stock for %s", item.Name))
			return
		}
		applied = append(applied, item)
	}

	order := models.Order{
		ID:              primitive.NewObjectID(),
		User:            user.ID,
		Items:           orderItems,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Discount:        discount,
		Total:           total,
		TotalItems:      totalItems,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		Status:          statusFor(input.PaymentMethod),
		CreatedAt:       time.Now(),
	}

	if _, err := cc.orders.InsertOne(ctx, order); err != nil {
		cc.restoreStock(ctx, applied)
		respondServerError(c, "checkout", err)
		return
	}

	if err := cc.saveItems(ctx, cart.ID, []models.CartItem{}); err != nil {
		// The order exists and stock is taken; an uncleared cart is the
		// lesser failure, surface it in the log only.
		respondServerError(c, "checkout clear cart", err)
		return
	}

	respondMessage(c, http.StatusOK, "Order placed successfully", gin.H{
		"order":   order,
		"orderId": order.ID.Hex(),
	})
}
