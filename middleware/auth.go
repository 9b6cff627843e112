package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ayush-roy-21/RoyElegance/models"
	"github.com/ayush-roy-21/RoyElegance/utils"
)

const userKey = "authUser"

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}

// Auth verifies the bearer token, loads the referenced user and attaches it
// to the request context. Rejects with 401 when the token is missing,
// invalid, expired, or the user no longer exists.
func Auth(users *mongo.Collection, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "No token provided. Authorization denied.")
			return
		}

		userID, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token. Authorization denied.")
			return
		}

		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token. Authorization denied.")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := users.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
			abortUnauthorized(c, "User not found. Authorization denied.")
			return
		}

		c.Set(userKey, &user)
		c.Next()
	}
}

// Admin layers a role check on top of Auth. Must run after Auth.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFrom(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied. Admins only.",
			})
			return
		}
		c.Next()
	}
}

// UserFrom returns the authenticated user attached by Auth, or nil.
func UserFrom(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SetUser attaches a user to the context the same way Auth does. Exported
// for handler tests.
func SetUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
}
