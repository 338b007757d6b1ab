// internal/models/favourite.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// FavouriteProduct is a user-product bookmark with no extra state; the
// (user, product) pair is toggled as a whole.
type FavouriteProduct struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favourites_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_favourites_user_product"`
	CreatedAt time.Time `json:"created_at"`

	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// MailSubscription is the mailing list. The email is globally unique; the
// user link is optional and informational only.
type MailSubscription struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email     string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	UserID    *uuid.UUID `json:"user_id" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at"`

	User *User `json:"-" gorm:"foreignKey:UserID"`
}
