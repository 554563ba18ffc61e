// app.go

package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// app carries the process-wide collaborators. Everything is constructed once
// in main and injected here; handlers never reach for globals.
type app struct {
	db        *mongo.Database
	images    ImageHost
	jwtSecret []byte
	appEnv    string
}

func newRouter(a *app, clientOrigin string) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = maxFilesPerRequest * maxImageBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{clientOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Auth
	users := r.Group("/api/users")
	{
		users.POST("/signup", a.signup)
		users.POST("/login", a.login)
		users.POST("/logout", a.logout)
		users.GET("/check-auth", a.authRequired, a.checkAuth)
	}

	// Catalog
	product := r.Group("/api/product")
	{
		product.GET("/get-all-product", a.listProducts)
		product.GET("/getCategories", a.listCategories)
		product.GET("/get-sub-Categories", a.listSubCategories)
		product.GET("/get-product/:productId", a.getProductByID)
		product.POST("/addCategory", a.addCategory)
		product.POST("/addSubCategory", a.addSubCategory)
		product.POST("/addProduct", a.addProduct)
		product.PUT("/update-product/:productId", a.editProduct)
	}

	// Wishlist
	wishlist := r.Group("/api/wishlist", a.authRequired)
	{
		wishlist.POST("/add/:productId", a.addToWishlist)
		wishlist.DELETE("/remove/:productId", a.removeFromWishlist)
		wishlist.GET("/get-all-wishlist", a.getAllWishlist)
	}

	return r
}

// ok writes the standard success envelope, merging any extra payload fields.
func ok(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// serverError maps a store or adapter failure to a 500. The underlying error
// text is only exposed outside production.
func (a *app) serverError(c *gin.Context, message string, err error) {
	if err != nil && a.appEnv != "production" {
		message = message + ": " + err.Error()
	}
	fail(c, 500, message)
}
