// auth.go

package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func (a *app) signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		fail(c, 400, "Please provide all required fields")
		return
	}

	ctx := context.Background()
	count, err := a.db.Collection("users").CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		a.serverError(c, "Server error during registration", err)
		return
	}
	if count > 0 {
		fail(c, 400, "User already exists with this email")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.serverError(c, "Server error during registration", err)
		return
	}

	now := time.Now()
	user := User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Wishlist:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := a.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		// the unique index can still race the CountDocuments check
		if mongo.IsDuplicateKeyError(err) {
			fail(c, 400, "User already exists with this email")
			return
		}
		a.serverError(c, "Server error during registration", err)
		return
	}
	user.ID = res.InsertedID.(primitive.ObjectID)

	token, err := a.issueToken(user.ID.Hex())
	if err != nil {
		a.serverError(c, "Server error during registration", err)
		return
	}
	a.setSessionCookie(c, token)

	ok(c, 201, gin.H{"message": "User registered successfully", "user": user.Public()})
}

func (a *app) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		fail(c, 400, "Please provide email and password")
		return
	}

	var user User
	err := a.db.Collection("users").FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		// same message as a bad password so emails can't be probed
		fail(c, 401, "Invalid email or password")
		return
	}
	if err != nil {
		a.serverError(c, "Server error during login", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		fail(c, 401, "Invalid email or password")
		return
	}

	token, err := a.issueToken(user.ID.Hex())
	if err != nil {
		a.serverError(c, "Server error during login", err)
		return
	}
	a.setSessionCookie(c, token)

	ok(c, 200, gin.H{"message": "Login successful", "user": user.Public()})
}

func (a *app) logout(c *gin.Context) {
	a.clearSessionCookie(c)
	ok(c, 200, gin.H{"message": "Logged out successfully"})
}

func (a *app) checkAuth(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		fail(c, 404, "User not found")
		return
	}

	var user User
	err = a.db.Collection("users").FindOne(context.Background(), bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		fail(c, 404, "User not found")
		return
	}
	if err != nil {
		a.serverError(c, "Server error", err)
		return
	}

	ok(c, 200, gin.H{"isAuthenticated": true, "user": user.Public()})
}
