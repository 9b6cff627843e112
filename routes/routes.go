package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayush-roy-21/RoyElegance/controllers"
	"github.com/ayush-roy-21/RoyElegance/database"
	"github.com/ayush-roy-21/RoyElegance/middleware"
)

const rateLimitWindow = 15 * time.Minute

func Register(r *gin.Engine, db *database.Collections, jwtSecret []byte) {
	auth := controllers.NewAuthController(db, jwtSecret)
	products := controllers.NewProductController(db)
	cart := controllers.NewCartController(db)
	wishlist := controllers.NewWishlistController(db)
	orders := controllers.NewOrderController(db)

	requireAuth := middleware.Auth(db.Users, jwtSecret)
	requireAdmin := middleware.Admin()

	generalLimiter := middleware.NewRateLimiter(100, rateLimitWindow,
		"Too many requests from this IP, please try again later.")
	authLimiter := middleware.NewRateLimiter(10, rateLimitWindow,
		"Too many authentication attempts, please try again later.")
	checkoutLimiter := middleware.NewRateLimiter(10, rateLimitWindow,
		"Too many checkout attempts, please try again later.")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := r.Group("/api", generalLimiter.Middleware())
	{
		authGroup := api.Group("/auth", authLimiter.Middleware())
		{
			authGroup.POST("/register", auth.Register)
			authGroup.POST("/login", auth.Login)
			authGroup.POST("/forgot-password", auth.ForgotPassword)
			authGroup.POST("/reset-password", auth.ResetPassword)

			authGroup.GET("/user", requireAuth, auth.CurrentUser)
			authGroup.GET("/verify", requireAuth, auth.VerifyToken)
			authGroup.PUT("/profile", requireAuth, auth.UpdateProfile)
			authGroup.PUT("/password", requireAuth, auth.ChangePassword)
			authGroup.POST("/logout", requireAuth, auth.Logout)
			authGroup.GET("/login-events", requireAuth, requireAdmin, auth.LoginEvents)
		}

		productGroup := api.Group("/products")
		{
			productGroup.GET("", products.List)
			productGroup.GET("/categories", products.Categories)
			productGroup.GET("/featured", products.Featured)
			productGroup.GET("/trending", products.Trending)
			productGroup.GET("/search/suggestions", products.SearchSuggestions)
			productGroup.GET("/:id", products.GetByID)
			productGroup.POST("/:id/reviews", requireAuth, products.AddReview)

			productGroup.POST("", requireAuth, requireAdmin, products.Create)
			productGroup.PUT("/:id", requireAuth, requireAdmin, products.Update)
			productGroup.DELETE("/:id", requireAuth, requireAdmin, products.Delete)
		}

		cartGroup := api.Group("/cart", requireAuth)
		{
			cartGroup.GET("", cart.Get)
			cartGroup.POST("/add", cart.AddItem)
			cartGroup.PUT("/update/:itemId", cart.UpdateItem)
			cartGroup.DELETE("/remove/:itemId", cart.RemoveItem)
			cartGroup.DELETE("/clear", cart.Clear)
			cartGroup.POST("/checkout", checkoutLimiter.Middleware(), cart.Checkout)

			cartGroup.GET("/wishlist", wishlist.Get)
			cartGroup.POST("/wishlist/add/:productId", wishlist.Add)
			cartGroup.DELETE("/wishlist/remove/:productId", wishlist.Remove)

			cartGroup.GET("/orders", orders.List)
			cartGroup.GET("/orders/:orderId", orders.Get)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
			"path":    c.Request.URL.Path,
		})
	})
}
