// wishlist.go

package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (a *app) currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		fail(c, 401, "Not authorized, token failed")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (a *app) addToWishlist(c *gin.Context) {
	userID, okUser := a.currentUserID(c)
	if !okUser {
		return
	}
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		fail(c, 404, "Product not found")
		return
	}

	ctx := context.Background()
	err = a.db.Collection("products").FindOne(ctx, bson.M{"_id": productID}).Err()
	if err == mongo.ErrNoDocuments {
		fail(c, 404, "Product not found")
		return
	}
	if err != nil {
		a.serverError(c, "Server error while adding to wishlist", err)
		return
	}

	var wishlist Wishlist
	err = a.db.Collection("wishlists").FindOne(ctx, bson.M{"user": userID}).Decode(&wishlist)
	switch {
	case err == mongo.ErrNoDocuments:
		// first add creates the document
		wishlist = Wishlist{User: userID, Products: []primitive.ObjectID{productID}}
		if _, err := a.db.Collection("wishlists").InsertOne(ctx, wishlist); err != nil {
			a.serverError(c, "Server error while adding to wishlist", err)
			return
		}
	case err != nil:
		a.serverError(c, "Server error while adding to wishlist", err)
		return
	default:
		if containsID(wishlist.Products, productID) {
			fail(c, 400, "Product already in wishlist")
			return
		}
		wishlist.Products = append(wishlist.Products, productID)
		_, err = a.db.Collection("wishlists").UpdateOne(ctx,
			bson.M{"user": userID}, bson.M{"$addToSet": bson.M{"products": productID}})
		if err != nil {
			a.serverError(c, "Server error while adding to wishlist", err)
			return
		}
	}

	a.mirrorWishlist(ctx, userID, bson.M{"$addToSet": bson.M{"wishlist": productID}})

	ok(c, 200, gin.H{
		"message":       "Product added to wishlist successfully",
		"wishlistCount": len(wishlist.Products),
	})
}

func (a *app) removeFromWishlist(c *gin.Context) {
	userID, okUser := a.currentUserID(c)
	if !okUser {
		return
	}
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		fail(c, 400, "Product not in wishlist")
		return
	}

	ctx := context.Background()
	var wishlist Wishlist
	err = a.db.Collection("wishlists").FindOne(ctx, bson.M{"user": userID}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		fail(c, 404, "Wishlist not found")
		return
	}
	if err != nil {
		a.serverError(c, "Server error while removing from wishlist", err)
		return
	}
	if !containsID(wishlist.Products, productID) {
		fail(c, 400, "Product not in wishlist")
		return
	}

	_, err = a.db.Collection("wishlists").UpdateOne(ctx,
		bson.M{"user": userID}, bson.M{"$pull": bson.M{"products": productID}})
	if err != nil {
		a.serverError(c, "Server error while removing from wishlist", err)
		return
	}

	a.mirrorWishlist(ctx, userID, bson.M{"$pull": bson.M{"wishlist": productID}})

	ok(c, 200, gin.H{
		"message":       "Product removed from wishlist successfully",
		"wishlistCount": len(wishlist.Products) - 1,
	})
}

func (a *app) getAllWishlist(c *gin.Context) {
	userID, okUser := a.currentUserID(c)
	if !okUser {
		return
	}

	ctx := context.Background()
	var wishlist Wishlist
	err := a.db.Collection("wishlists").FindOne(ctx, bson.M{"user": userID}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		ok(c, 200, gin.H{"wishlist": []WishlistItem{}, "wishlistCount": 0})
		return
	}
	if err != nil {
		a.serverError(c, "Server error while fetching wishlist", err)
		return
	}

	products := []Product{}
	if len(wishlist.Products) > 0 {
		cur, err := a.db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": wishlist.Products}})
		if err != nil {
			a.serverError(c, "Server error while fetching wishlist", err)
			return
		}
		if err := cur.All(ctx, &products); err != nil {
			a.serverError(c, "Server error while fetching wishlist", err)
			return
		}
	}

	expanded, err := a.expandProducts(ctx, orderProducts(wishlist.Products, products))
	if err != nil {
		a.serverError(c, "Server error while fetching wishlist", err)
		return
	}

	ok(c, 200, gin.H{
		"wishlist":      formatWishlistItems(expanded),
		"wishlistCount": len(wishlist.Products),
	})
}

// orderProducts re-sorts fetched products into stored wishlist order and
// drops references whose product has since disappeared.
func orderProducts(order []primitive.ObjectID, products []Product) []Product {
	byID := make(map[primitive.ObjectID]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]Product, 0, len(order))
	for _, id := range order {
		if p, found := byID[id]; found {
			out = append(out, p)
		}
	}
	return out
}

// formatWishlistItems flattens expanded products into the wishlist page
// shape: first variant's price (0 if none), first image (null if none), plus
// the owning sub-category and category names.
func formatWishlistItems(products []ExpandedProduct) []WishlistItem {
	items := make([]WishlistItem, 0, len(products))
	for _, p := range products {
		item := WishlistItem{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Variants:    p.Variants,
		}
		if item.Variants == nil {
			item.Variants = []Variant{}
		}
		if len(p.Variants) > 0 {
			item.Price = p.Variants[0].Price
		}
		if len(p.Images) > 0 {
			item.Image = &p.Images[0]
		}
		if p.SubCategory != nil {
			item.SubCategory = p.SubCategory.Name
			if p.SubCategory.Category != nil {
				item.Category = p.SubCategory.Category.Name
			}
		}
		items = append(items, item)
	}
	return items
}

// mirrorWishlist applies a membership change to the user's denormalized
// wishlist array. The wishlist document is the source of truth, so a mirror
// failure is not surfaced; instead a full reconcile is attempted.
func (a *app) mirrorWishlist(ctx context.Context, userID primitive.ObjectID, update bson.M) {
	_, err := a.db.Collection("users").UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err == nil {
		return
	}
	log.Printf("wishlist mirror for user %s: %v", userID.Hex(), err)
	if err := a.reconcileWishlist(ctx, userID); err != nil {
		log.Printf("wishlist reconcile for user %s: %v", userID.Hex(), err)
	}
}

// reconcileWishlist recomputes the user's denormalized array from the
// wishlist document. Idempotent; safe to run at any time.
func (a *app) reconcileWishlist(ctx context.Context, userID primitive.ObjectID) error {
	var wishlist Wishlist
	err := a.db.Collection("wishlists").FindOne(ctx, bson.M{"user": userID}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		wishlist.Products = []primitive.ObjectID{}
	} else if err != nil {
		return err
	}
	_, err = a.db.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID}, bson.M{"$set": bson.M{"wishlist": wishlist.Products}})
	return err
}
