// internal/models/category.go
package models

import "github.com/google/uuid"

// Category forms a two-level tree: top-level categories have a nil parent,
// subcategories point at their top-level category.
type Category struct {
	BaseModel
	Title    string     `json:"title" gorm:"size:150;not null"`
	Slug     string     `json:"slug" gorm:"uniqueIndex;size:160;not null"`
	ParentID *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`

	// Relationships
	Parent        *Category  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Subcategories []Category `json:"subcategories,omitempty" gorm:"foreignKey:ParentID"`
	Products      []Product  `json:"products,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}
