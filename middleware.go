// middleware.go

package main

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "token"
	sessionTTL    = 30 * 24 * time.Hour
)

type JWTClaims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

func (a *app) issueToken(userID string) (string, error) {
	claims := JWTClaims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(sessionTTL).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
}

// setSessionCookie attaches the signed token as an HTTP-only, SameSite-Strict
// cookie. Secure is only set in production so local http still works.
func (a *app) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, token, int(sessionTTL.Seconds()), "/", "", a.appEnv == "production", true)
}

func (a *app) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", a.appEnv == "production", true)
}

// authRequired validates the cookie-borne session token and stashes the user
// id in the request context for downstream handlers.
func (a *app) authRequired(c *gin.Context) {
	tokenStr, err := c.Cookie(sessionCookie)
	if err != nil || tokenStr == "" {
		c.AbortWithStatusJSON(401, gin.H{"success": false, "message": "Not authorized, no token"})
		return
	}
	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	})
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{"success": false, "message": "Not authorized, token failed"})
		return
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		c.Set("userId", claims.UserID)
		c.Next()
	} else {
		c.AbortWithStatusJSON(401, gin.H{"success": false, "message": "Not authorized, token failed"})
	}
}
