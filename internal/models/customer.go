// internal/models/customer.go
package models

import "github.com/google/uuid"

// Customer is the buyer profile a cart hangs off. The user link is nulled
// when the account is deleted; the customer row and its order history stay.
type Customer struct {
	BaseModel
	UserID    *uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;constraint:OnDelete:SET NULL"`
	FirstName string     `json:"first_name" gorm:"size:255"`
	LastName  string     `json:"last_name" gorm:"size:255"`

	// Relationships
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
}
