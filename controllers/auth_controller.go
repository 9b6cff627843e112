package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayush-roy-21/RoyElegance/database"
	"github.com/ayush-roy-21/RoyElegance/middleware"
	"github.com/ayush-roy-21/RoyElegance/models"
	"github.com/ayush-roy-21/RoyElegance/utils"
)

type AuthController struct {
	users       *mongo.Collection
	loginEvents *mongo.Collection
	jwtSecret   []byte
}

func NewAuthController(db *database.Collections, jwtSecret []byte) *AuthController {
	return &AuthController{
		users:       db.Users,
		loginEvents: db.LoginEvents,
		jwtSecret:   jwtSecret,
	}
}

func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":      u.ID.Hex(),
		"name":    u.Name,
		"email":   u.Email,
		"phone":   u.Phone,
		"address": u.Address,
		"role":    u.Role,
	}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone" binding:"required"`
		Address  string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(input.Email))

	err := ac.users.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		respondError(c, http.StatusBadRequest, "User already exists with this email")
		return
	}
	if err != mongo.ErrNoDocuments {
		respondServerError(c, "register", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), 10)
	if err != nil {
		respondServerError(c, "register", err)
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Password:  string(hashed),
		Phone:     input.Phone,
		Address:   input.Address,
		Role:      models.RoleUser,
		Wishlist:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := ac.users.InsertOne(ctx, user); err != nil {
		respondServerError(c, "register", err)
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), ac.jwtSecret, utils.AccessTokenTTL)
	if err != nil {
		respondServerError(c, "register", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    userPayload(&user),
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := ac.users.FindOne(ctx, bson.M{"email": strings.ToLower(input.Email)}).Decode(&user)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		respondError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	// Fire-and-forget audit record; a failed insert must not block login.
	_, _ = ac.loginEvents.InsertOne(ctx, models.LoginEvent{
		ID:        primitive.NewObjectID(),
		User:      user.ID,
		Timestamp: time.Now(),
		IP:        c.ClientIP(),
	})

	token, err := utils.GenerateToken(user.ID.Hex(), ac.jwtSecret, utils.AccessTokenTTL)
	if err != nil {
		respondServerError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(&user),
	})
}

func (ac *AuthController) CurrentUser(c *gin.Context) {
	user := middleware.UserFrom(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (ac *AuthController) VerifyToken(c *gin.Context) {
	user := middleware.UserFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token is valid",
		"user":    user,
	})
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Phone   string `json:"phone" binding:"required"`
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user := middleware.UserFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":      input.Name,
		"phone":     input.Phone,
		"address":   input.Address,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.User
	if err := ac.users.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondServerError(c, "update profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    userPayload(&updated),
	})
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	user := middleware.UserFrom(c)

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)) != nil {
		respondError(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	if err := ac.overwritePassword(c, user.ID, input.NewPassword); err != nil {
		respondServerError(c, "change password", err)
		return
	}

	respondMessage(c, http.StatusOK, "Password changed successfully", nil)
}

func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := ac.users.FindOne(ctx, bson.M{"email": strings.ToLower(input.Email)}).Decode(&user); err != nil {
		respondError(c, http.StatusNotFound, "User not found with this email")
		return
	}

	// Returned in the body in place of a mailer. The token is not single-use:
	// it stays valid for its full TTL even after a successful reset.
	resetToken, err := utils.GenerateToken(user.ID.Hex(), ac.jwtSecret, utils.ResetTokenTTL)
	if err != nil {
		respondServerError(c, "forgot password", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Password reset link sent to your email",
		"resetToken": resetToken,
	})
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	var input struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	userID, err := utils.ParseToken(input.Token, ac.jwtSecret)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid reset token")
		return
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid reset token")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := ac.users.FindOne(ctx, bson.M{"_id": objID}).Err(); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid reset token")
		return
	}

	if err := ac.overwritePassword(c, objID, input.NewPassword); err != nil {
		respondServerError(c, "reset password", err)
		return
	}

	respondMessage(c, http.StatusOK, "Password reset successfully", nil)
}

func (ac *AuthController) Logout(c *gin.Context) {
	// Stateless tokens: the client simply discards its copy.
	respondMessage(c, http.StatusOK, "Logged out successfully", nil)
}

func (ac *AuthController) LoginEvents(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := ac.loginEvents.Find(ctx, bson.M{}, opts)
	if err != nil {
		respondServerError(c, "login events", err)
		return
	}

	events := []models.LoginEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		respondServerError(c, "login events", err)
		return
	}

	respondData(c, http.StatusOK, events)
}

func (ac *AuthController) overwritePassword(c *gin.Context, userID primitive.ObjectID, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), 10)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	_, err = ac.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
		"password":  string(hashed),
		"updatedAt": time.Now(),
	}})
	return err
}
