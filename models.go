// models.go

package main

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name      string               `bson:"name" json:"name"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password" json:"password,omitempty"`
	Wishlist  []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is what auth endpoints return; never carries the hash.
type PublicUser struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type SubCategory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Category  primitive.ObjectID `bson:"category" json:"category"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Variant is a purchasable configuration embedded in a Product. Once stored a
// variant keeps its id across edits; edits that omit the id get a fresh one.
type Variant struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Ram      string             `bson:"ram" json:"ram"`
	Price    float64            `bson:"price" json:"price"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	SubCategory primitive.ObjectID `bson:"subCategory" json:"subCategory"`
	Variants    []Variant          `bson:"variants" json:"variants"`
	Images      []string           `bson:"images" json:"images"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ExpandedSubCategory is a SubCategory with its parent category attached, the
// shape list/detail endpoints hand to the frontend.
type ExpandedSubCategory struct {
	ID        primitive.ObjectID `json:"_id"`
	Name      string             `json:"name"`
	Category  *Category          `json:"category,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type ExpandedProduct struct {
	ID          primitive.ObjectID   `json:"_id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	SubCategory *ExpandedSubCategory `json:"subCategory"`
	Variants    []Variant            `json:"variants"`
	Images      []string             `json:"images"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type Wishlist struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	User     primitive.ObjectID   `bson:"user" json:"user"`
	Products []primitive.ObjectID `bson:"products" json:"products"`
}

// WishlistItem is the flattened projection the wishlist page renders.
type WishlistItem struct {
	ID          primitive.ObjectID `json:"_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Image       *string            `json:"image"`
	SubCategory string             `json:"subCategory"`
	Category    string             `json:"category"`
	Variants    []Variant          `json:"variants"`
}
