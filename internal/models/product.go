// internal/models/product.go
package models

import "github.com/google/uuid"

// PlaceholderImageURL is shown for products without gallery images.
const PlaceholderImageURL = "https://static.1357elite.com/placeholder/product.png"

type Product struct {
	BaseModel
	Title        string      `json:"title" gorm:"size:150;not null"`
	Slug         string      `json:"slug" gorm:"uniqueIndex;size:160;not null"`
	Price        int64       `json:"price" gorm:"not null;default:0;check:price >= 0"` // minor currency units
	Quantity     int         `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`
	Size         ProductSize `json:"size" gorm:"type:varchar(20);default:'39'"`
	Descriptions string      `json:"descriptions" gorm:"type:text;default:'There will be a description soon'"`
	CategoryID   uuid.UUID   `json:"category_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Category Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []GalleryImage `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews  []Review       `json:"reviews,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// FirstImageURL returns the thumbnail for listings, falling back to the
// shared placeholder when the gallery is empty.
func (p *Product) FirstImageURL() string {
	if len(p.Images) == 0 {
		return PlaceholderImageURL
	}
	return p.Images[0].URL
}

func (p *Product) InStock() bool {
	return p.Quantity > 0
}

type GalleryImage struct {
	BaseModel
	ProductID  uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	URL        string    `json:"url" gorm:"size:512;not null"`
	StorageKey string    `json:"storage_key" gorm:"size:512"`

	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}

// Review is immutable once created; there is no update path.
type Review struct {
	BaseModel
	Text      string    `json:"text" gorm:"type:text;not null"`
	AuthorID  uuid.UUID `json:"author_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`

	Author  User    `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Product Product `json:"-" gorm:"foreignKey:ProductID"`
}
