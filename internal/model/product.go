package model

import "github.com/wandaazhar007/backend-kansha-2026/internal/store"

// ProductsCollection is the document store collection holding products.
const ProductsCollection = "products"

// ProductCategories is the closed set of legal product categories.
var ProductCategories = []string{"hibachi", "sushi", "side", "appetizer"}

// IsProductCategory reports whether v belongs to the closed category set.
func IsProductCategory(v string) bool {
	for _, c := range ProductCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Product represents a menu item entity.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	ImageUrls   []string `json:"imageUrls"`
	IsAvailable bool     `json:"isAvailable"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// ProductFromDocument maps a stored document onto a Product.
// Fields missing from the document are left at their zero value.
func ProductFromDocument(doc store.Document) Product {
	return Product{
		ID:          docString(doc, "id"),
		Name:        docString(doc, "name"),
		Description: docString(doc, "description"),
		Price:       docFloat(doc, "price"),
		Category:    docString(doc, "category"),
		ImageUrls:   docStrings(doc, "imageUrls"),
		IsAvailable: docBool(doc, "isAvailable"),
		CreatedAt:   docString(doc, "createdAt"),
		UpdatedAt:   docString(doc, "updatedAt"),
	}
}
