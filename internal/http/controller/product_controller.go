package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wandaazhar007/backend-kansha-2026/internal/metrics"
	"github.com/wandaazhar007/backend-kansha-2026/internal/model"
	"github.com/wandaazhar007/backend-kansha-2026/internal/store"
	"github.com/wandaazhar007/backend-kansha-2026/internal/validation"
)

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	products store.Collection
}

// NewProductController creates a new ProductController on the given store.
func NewProductController(s store.Store) *ProductController {
	return &ProductController{
		products: s.Collection(model.ProductsCollection),
	}
}

const categoryMessage = "Category must be one of: hibachi, sushi, side, appetizer"

var listProductsRules = []*validation.Rule{
	validation.Query("category").Optional().OneOf(model.ProductCategories, "Invalid category filter"),
	validation.Query("search").Optional().String("search must be a string"),
}

var productIDRules = []*validation.Rule{
	validation.Param("id").Required("Product id is required"),
}

var createProductRules = []*validation.Rule{
	validation.Body("name").Required("Name is required").String("Name must be a string"),
	validation.Body("description").Required("Description is required").String("Description must be a string"),
	validation.Body("price").Required("Price is required").GreaterThan(0, "Price must be a positive number"),
	validation.Body("category").Required("Category is required").OneOf(model.ProductCategories, categoryMessage),
	validation.Body("imageUrls").Optional().
		Array("imageUrls must be an array").
		Each(validation.IsURL, "Each image URL in imageUrls must be a valid URL"),
	validation.Body("isAvailable").Optional().Bool("isAvailable must be boolean"),
}

var updateProductRules = []*validation.Rule{
	validation.Param("id").Required("Product id is required"),
	validation.Body("name").Optional().String("Name must be a string"),
	validation.Body("description").Optional().String("Description must be a string"),
	validation.Body("price").Optional().GreaterThan(0, "Price must be a positive number"),
	validation.Body("category").Optional().OneOf(model.ProductCategories, categoryMessage),
	validation.Body("imageUrls").Optional().
		Array("imageUrls must be an array").
		Each(validation.IsURL, "Each image URL in imageUrls must be a valid URL"),
	validation.Body("isAvailable").Optional().Bool("isAvailable must be boolean"),
}

// List handles GET /api/products?category=&search=
// The category filter is pushed down to the store; search is applied
// in memory over name and description.
func (pc *ProductController) List(c *gin.Context) {
	if !validate(c, requestInput(c, nil), listProductsRules) {
		return
	}

	var filter *store.Filter
	if category := c.Query("category"); category != "" {
		filter = &store.Filter{Field: "category", Value: category}
	}

	docs, err := pc.products.List(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err, "Product")
		return
	}

	search := c.Query("search")
	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		product := model.ProductFromDocument(doc)
		if search != "" && !matchesSearch(product.Name, product.Description, search) {
			continue
		}
		products = append(products, product)
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetByID handles GET /api/products/:id
func (pc *ProductController) GetByID(c *gin.Context) {
	if !validate(c, requestInput(c, nil), productIDRules) {
		return
	}

	doc, err := pc.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Product")
		return
	}

	c.JSON(http.StatusOK, model.ProductFromDocument(doc))
}

// Create handles POST /api/products (verified identity required).
func (pc *ProductController) Create(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if !validate(c, requestInput(c, body), createProductRules) {
		return
	}

	name, _ := body["name"].(string)
	description, _ := body["description"].(string)
	category, _ := body["category"].(string)
	price, _ := validation.Number(body["price"])

	isAvailable := true
	if b, present := body["isAvailable"].(bool); present {
		isAvailable = b
	}

	id, err := pc.products.Add(c.Request.Context(), store.Document{
		"name":        name,
		"description": description,
		"price":       price,
		"category":    category,
		"imageUrls":   imageURLList(body["imageUrls"]),
		"isAvailable": isAvailable,
	})
	if err != nil {
		respondStoreError(c, err, "Product")
		return
	}

	metrics.ProductsCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"message": "Product created successfully",
	})
}

// Update handles PUT /api/products/:id (verified identity required).
// Only fields present in the request body are overwritten.
func (pc *ProductController) Update(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if !validate(c, requestInput(c, body), updateProductRules) {
		return
	}

	patch := store.Document{}
	if v, present := body["name"]; present {
		patch["name"] = v
	}
	if v, present := body["description"]; present {
		patch["description"] = v
	}
	if v, present := body["price"]; present {
		price, _ := validation.Number(v)
		patch["price"] = price
	}
	if v, present := body["category"]; present {
		patch["category"] = v
	}
	if v, present := body["imageUrls"]; present {
		patch["imageUrls"] = imageURLList(v)
	}
	if v, present := body["isAvailable"]; present {
		patch["isAvailable"] = v
	}

	if err := pc.products.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondStoreError(c, err, "Product")
		return
	}

	metrics.ProductsUpdated.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// Delete handles DELETE /api/products/:id (verified identity required).
func (pc *ProductController) Delete(c *gin.Context) {
	if !validate(c, requestInput(c, nil), productIDRules) {
		return
	}

	if err := pc.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, "Product")
		return
	}

	metrics.ProductsDeleted.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// imageURLList normalizes the validated imageUrls value to a string
// slice, preserving element order.
func imageURLList(value any) []string {
	out := []string{}
	switch v := value.(type) {
	case []any:
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, v...)
	}
	return out
}
