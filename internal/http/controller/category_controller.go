package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wandaazhar007/backend-kansha-2026/internal/metrics"
	"github.com/wandaazhar007/backend-kansha-2026/internal/model"
	"github.com/wandaazhar007/backend-kansha-2026/internal/store"
	"github.com/wandaazhar007/backend-kansha-2026/internal/validation"
)

// CategoryController handles HTTP requests for category operations.
type CategoryController struct {
	categories store.Collection
}

// NewCategoryController creates a new CategoryController on the given store.
func NewCategoryController(s store.Store) *CategoryController {
	return &CategoryController{
		categories: s.Collection(model.CategoriesCollection),
	}
}

var listCategoriesRules = []*validation.Rule{
	validation.Query("search").Optional().String("search must be a string"),
}

var categoryIDRules = []*validation.Rule{
	validation.Param("id").Required("Category id is required"),
}

var createCategoryRules = []*validation.Rule{
	validation.Body("name").Required("Name is required").String("Name must be a string"),
	validation.Body("description").Optional().String("Description must be a string"),
}

var updateCategoryRules = []*validation.Rule{
	validation.Param("id").Required("Category id is required"),
	validation.Body("name").Optional().String("Name must be a string"),
	validation.Body("description").Optional().String("Description must be a string"),
}

// List handles GET /api/categories?search=
func (cc *CategoryController) List(c *gin.Context) {
	if !validate(c, requestInput(c, nil), listCategoriesRules) {
		return
	}

	docs, err := cc.categories.List(c.Request.Context(), nil)
	if err != nil {
		respondStoreError(c, err, "Category")
		return
	}

	search := c.Query("search")
	categories := make([]model.Category, 0, len(docs))
	for _, doc := range docs {
		category := model.CategoryFromDocument(doc)
		if search != "" && !matchesSearch(category.Name, category.Description, search) {
			continue
		}
		categories = append(categories, category)
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetByID handles GET /api/categories/:id
func (cc *CategoryController) GetByID(c *gin.Context) {
	if !validate(c, requestInput(c, nil), categoryIDRules) {
		return
	}

	doc, err := cc.categories.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Category")
		return
	}

	c.JSON(http.StatusOK, model.CategoryFromDocument(doc))
}

// Create handles POST /api/categories (verified identity required).
func (cc *CategoryController) Create(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if !validate(c, requestInput(c, body), createCategoryRules) {
		return
	}

	name, _ := body["name"].(string)
	description, _ := body["description"].(string)

	id, err := cc.categories.Add(c.Request.Context(), store.Document{
		"name":        name,
		"description": description,
	})
	if err != nil {
		respondStoreError(c, err, "Category")
		return
	}

	metrics.CategoriesCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"message": "Category created successfully",
	})
}

// Update handles PUT /api/categories/:id (verified identity required).
// Only fields present in the request body are overwritten.
func (cc *CategoryController) Update(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	if !validate(c, requestInput(c, body), updateCategoryRules) {
		return
	}

	patch := store.Document{}
	if v, present := body["name"]; present {
		patch["name"] = v
	}
	if v, present := body["description"]; present {
		patch["description"] = v
	}

	if err := cc.categories.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondStoreError(c, err, "Category")
		return
	}

	metrics.CategoriesUpdated.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

// Delete handles DELETE /api/categories/:id (verified identity required).
func (cc *CategoryController) Delete(c *gin.Context) {
	if !validate(c, requestInput(c, nil), categoryIDRules) {
		return
	}

	if err := cc.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err, "Category")
		return
	}

	metrics.CategoriesDeleted.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
