// catalog.go

package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Categories -----

func (a *app) listCategories(c *gin.Context) {
	ctx := context.Background()
	cur, err := a.db.Collection("categories").Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		a.serverError(c, "Failed to fetch categories", err)
		return
	}
	categories := []Category{}
	if err := cur.All(ctx, &categories); err != nil {
		a.serverError(c, "Failed to fetch categories", err)
		return
	}
	ok(c, 200, gin.H{"categories": categories})
}

func (a *app) listSubCategories(c *gin.Context) {
	ctx := context.Background()
	cur, err := a.db.Collection("subcategories").Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		a.serverError(c, "Failed to fetch sub categories", err)
		return
	}
	subCategories := []SubCategory{}
	if err := cur.All(ctx, &subCategories); err != nil {
		a.serverError(c, "Failed to fetch sub categories", err)
		return
	}
	ok(c, 200, gin.H{"subCategories": subCategories})
}

func (a *app) addCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	_ = c.ShouldBindJSON(&req)
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		fail(c, 400, "Category name must be at least 2 characters")
		return
	}

	ctx := context.Background()
	count, err := a.db.Collection("categories").CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		a.serverError(c, "Server error", err)
		return
	}
	if count > 0 {
		fail(c, 400, "Category already exists")
		return
	}

	category := Category{Name: name, CreatedAt: time.Now()}
	res, err := a.db.Collection("categories").InsertOne(ctx, category)
	if err != nil {
		a.serverError(c, "Server error", err)
		return
	}
	category.ID = res.InsertedID.(primitive.ObjectID)

	ok(c, 201, gin.H{"message": "Category added successfully", "category": category})
}

func (a *app) addSubCategory(c *gin.Context) {
	var req struct {
		Name       string `json:"name"`
		CategoryID string `json:"categoryId"`
	}
	_ = c.ShouldBindJSON(&req)
	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		fail(c, 400, "Subcategory name must be at least 2 characters")
		return
	}
	if req.CategoryID == "" {
		fail(c, 400, "Category ID is required")
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		fail(c, 404, "Category not found")
		return
	}

	ctx := context.Background()
	err = a.db.Collection("categories").FindOne(ctx, bson.M{"_id": categoryID}).Err()
	if err == mongo.ErrNoDocuments {
		fail(c, 404, "Category not found")
		return
	}
	if err != nil {
		a.serverError(c, "Server error", err)
		return
	}

	subCategory := SubCategory{Name: name, Category: categoryID, CreatedAt: time.Now()}
	res, err := a.db.Collection("subcategories").InsertOne(ctx, subCategory)
	if err != nil {
		a.serverError(c, "Server error", err)
		return
	}
	subCategory.ID = res.InsertedID.(primitive.ObjectID)

	ok(c, 201, gin.H{"message": "Sub-category added successfully", "subCategory": subCategory})
}

// ----- Products -----

func (a *app) addProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		fail(c, 400, "Invalid form data")
		return
	}
	title := c.PostForm("title")
	description := c.PostForm("description")
	subCategoryHex := c.PostForm("subCategory")
	variantsRaw := c.PostForm("variants")

	if title == "" || description == "" || subCategoryHex == "" || variantsRaw == "" {
		fail(c, 400, "All fields are required")
		return
	}
	subCategoryID, err := primitive.ObjectIDFromHex(subCategoryHex)
	if err != nil {
		fail(c, 400, "Invalid sub category id")
		return
	}

	files, err := imageFiles(form, "images")
	if err != nil {
		fail(c, 400, err.Error())
		return
	}
	if len(files) == 0 {
		fail(c, 400, "At least one image is required")
		return
	}

	parsed, err := parseVariants(variantsRaw)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}
	if err := validateVariantsCreate(parsed); err != nil {
		fail(c, 400, err.Error())
		return
	}
	variants, err := normalizeVariants(parsed)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	ctx := context.Background()
	images, err := uploadAll(ctx, a.images, files)
	if err != nil {
		a.serverError(c, "Failed to upload images", err)
		return
	}

	now := time.Now()
	product := Product{
		Title:       title,
		Description: description,
		SubCategory: subCategoryID,
		Variants:    variants,
		Images:      images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res, err := a.db.Collection("products").InsertOne(ctx, product)
	if err != nil {
		a.serverError(c, "Server error", err)
		return
	}
	product.ID = res.InsertedID.(primitive.ObjectID)

	ok(c, 201, gin.H{"message": "Product added successfully", "product": product})
}

// pageWindow parses page/limit query values, applying the 1/10 defaults, and
// returns the skip offset for the requested page.
func pageWindow(pageStr, limitStr string) (page, limit, skip int64) {
	page = 1
	if n, err := strconv.ParseInt(pageStr, 10, 64); err == nil && n > 0 {
		page = n
	}
	limit = 10
	if n, err := strconv.ParseInt(limitStr, 10, 64); err == nil && n > 0 {
		limit = n
	}
	return page, limit, (page - 1) * limit
}

// productFilter builds the list filter. subCategory is the narrower of the
// two query filters and takes precedence when both are supplied; category
// resolves to the set of its sub-category ids.
func productFilter(subCategoryID *primitive.ObjectID, categorySubIDs []primitive.ObjectID) bson.M {
	filter := bson.M{}
	switch {
	case subCategoryID != nil:
		filter["subCategory"] = *subCategoryID
	case categorySubIDs != nil:
		filter["subCategory"] = bson.M{"$in": categorySubIDs}
	}
	return filter
}

func (a *app) listProducts(c *gin.Context) {
	_, limit, skip := pageWindow(c.Query("page"), c.Query("limit"))
	ctx := context.Background()

	var subCategoryID *primitive.ObjectID
	var categorySubIDs []primitive.ObjectID

	if subHex := c.Query("subCategory"); subHex != "" {
		id, err := primitive.ObjectIDFromHex(subHex)
		if err != nil {
			fail(c, 400, "Invalid sub category id")
			return
		}
		subCategoryID = &id
	} else if catHex := c.Query("category"); catHex != "" {
		id, err := primitive.ObjectIDFromHex(catHex)
		if err != nil {
			fail(c, 400, "Invalid category id")
			return
		}
		cur, err := a.db.Collection("subcategories").Find(ctx, bson.M{"category": id})
		if err != nil {
			a.serverError(c, "Failed to fetch products", err)
			return
		}
		var subs []SubCategory
		if err := cur.All(ctx, &subs); err != nil {
			a.serverError(c, "Failed to fetch products", err)
			return
		}
		categorySubIDs = make([]primitive.ObjectID, 0, len(subs))
		for _, s := range subs {
			categorySubIDs = append(categorySubIDs, s.ID)
		}
	}

	filter := productFilter(subCategoryID, categorySubIDs)

	total, err := a.db.Collection("products").CountDocuments(ctx, filter)
	if err != nil {
		a.serverError(c, "Failed to fetch products", err)
		return
	}

	cur, err := a.db.Collection("products").Find(ctx, filter,
		options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit))
	if err != nil {
		a.serverError(c, "Failed to fetch products", err)
		return
	}
	var products []Product
	if err := cur.All(ctx, &products); err != nil {
		a.serverError(c, "Failed to fetch products", err)
		return
	}

	expanded, err := a.expandProducts(ctx, products)
	if err != nil {
		a.serverError(c, "Failed to fetch products", err)
		return
	}

	ok(c, 200, gin.H{"products": expanded, "total": total})
}

func (a *app) getProductByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		fail(c, 404, "Product not found")
		return
	}

	ctx := context.Background()
	var product Product
	err = a.db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		fail(c, 404, "Product not found")
		return
	}
	if err != nil {
		a.serverError(c, "Server error", err)
		return
	}

	expanded, err := a.expandProducts(ctx, []Product{product})
	if err != nil {
		a.serverError(c, "Server error", err)
		return
	}

	ok(c, 200, gin.H{"product": expanded[0]})
}

func (a *app) editProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		fail(c, 404, "Product not found")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		fail(c, 400, "Invalid form data")
		return
	}
	title := c.PostForm("title")
	description := c.PostForm("description")
	variantsRaw := c.PostForm("variants")
	if title == "" || description == "" || variantsRaw == "" {
		fail(c, 400, "Title, description, and variants are required")
		return
	}

	ctx := context.Background()
	err = a.db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		fail(c, 404, "Product not found")
		return
	}
	if err != nil {
		a.serverError(c, "Server error", err)
		return
	}

	parsed, err := parseVariants(variantsRaw)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}
	if err := validateVariantsEdit(parsed); err != nil {
		fail(c, 400, err.Error())
		return
	}
	variants, err := normalizeVariants(parsed)
	if err != nil {
		fail(c, 400, err.Error())
		return
	}

	existingImages := parseJSONList(c.PostForm("existingImages"), "existingImages")
	imagesToDelete := parseJSONList(c.PostForm("imagesToDelete"), "imagesToDelete")

	// Dropped images are cleaned from the host best-effort before anything
	// else happens; the edit proceeds even if the host refuses.
	deleteAll(ctx, a.images, imagesToDelete)

	newFiles, err := imageFiles(form, "newImages")
	if err != nil {
		fail(c, 400, err.Error())
		return
	}
	newImages, err := uploadAll(ctx, a.images, newFiles)
	if err != nil {
		// nothing has been written to the product yet
		a.serverError(c, "Failed to upload new images", err)
		return
	}

	finalImages := append(existingImages, newImages...)
	if len(finalImages) == 0 {
		fail(c, 400, "At least one image is required")
		return
	}

	update := bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
		"variants":    variants,
		"images":      finalImages,
		"updatedAt":   time.Now(),
	}}
	var updated Product
	err = a.db.Collection("products").FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		fail(c, 404, "Product not found")
		return
	}
	if err != nil {
		a.serverError(c, "Failed to update product", err)
		return
	}

	expanded, err := a.expandProducts(ctx, []Product{updated})
	if err != nil {
		a.serverError(c, "Failed to update product", err)
		return
	}

	ok(c, 200, gin.H{"message": "Product updated successfully", "product": expanded[0]})
}

// ----- Expansion -----

// expandProducts attaches each product's sub-category and that sub-category's
// parent category, the document-store stand-in for a join. Two batched reads
// cover any number of products.
func (a *app) expandProducts(ctx context.Context, products []Product) ([]ExpandedProduct, error) {
	subIDs := make([]primitive.ObjectID, 0, len(products))
	seen := map[primitive.ObjectID]bool{}
	for _, p := range products {
		if !seen[p.SubCategory] {
			seen[p.SubCategory] = true
			subIDs = append(subIDs, p.SubCategory)
		}
	}

	subsByID := map[primitive.ObjectID]SubCategory{}
	catsByID := map[primitive.ObjectID]Category{}
	if len(subIDs) > 0 {
		cur, err := a.db.Collection("subcategories").Find(ctx, bson.M{"_id": bson.M{"$in": subIDs}})
		if err != nil {
			return nil, err
		}
		var subs []SubCategory
		if err := cur.All(ctx, &subs); err != nil {
			return nil, err
		}
		catIDs := make([]primitive.ObjectID, 0, len(subs))
		for _, s := range subs {
			subsByID[s.ID] = s
			catIDs = append(catIDs, s.Category)
		}
		if len(catIDs) > 0 {
			cur, err := a.db.Collection("categories").Find(ctx, bson.M{"_id": bson.M{"$in": catIDs}})
			if err != nil {
				return nil, err
			}
			var cats []Category
			if err := cur.All(ctx, &cats); err != nil {
				return nil, err
			}
			for _, cat := range cats {
				catsByID[cat.ID] = cat
			}
		}
	}

	out := make([]ExpandedProduct, 0, len(products))
	for _, p := range products {
		e := ExpandedProduct{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Variants:    p.Variants,
			Images:      p.Images,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
		}
		if sub, found := subsByID[p.SubCategory]; found {
			exp := ExpandedSubCategory{ID: sub.ID, Name: sub.Name, CreatedAt: sub.CreatedAt}
			if cat, found := catsByID[sub.Category]; found {
				exp.Category = &cat
			}
			e.SubCategory = &exp
		}
		out = append(out, e)
	}
	return out, nil
}
