package model

import "github.com/wandaazhar007/backend-kansha-2026/internal/store"

// CategoriesCollection is the document store collection holding categories.
const CategoriesCollection = "categories"

// Category represents a menu category entity.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CategoryFromDocument maps a stored document onto a Category.
// Fields missing from the document are left at their zero value.
func CategoryFromDocument(doc store.Document) Category {
	return Category{
		ID:          docString(doc, "id"),
		Name:        docString(doc, "name"),
		Description: docString(doc, "description"),
		CreatedAt:   docString(doc, "createdAt"),
		UpdatedAt:   docString(doc, "updatedAt"),
	}
}

func docString(doc store.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docFloat(doc store.Document, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func docBool(doc store.Document, key string) bool {
	b, _ := doc[key].(bool)
	return b
}

func docStrings(doc store.Document, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}
