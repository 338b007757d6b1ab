// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Enums
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
)

type ProductSize string

const (
	ProductSize39 ProductSize = "39"
	ProductSize40 ProductSize = "40"
	ProductSize41 ProductSize = "41"
	ProductSize42 ProductSize = "42"
	ProductSize43 ProductSize = "43"
	ProductSize44 ProductSize = "44"
)

// ProductSizes lists every sellable shoe size in catalog order.
var ProductSizes = []ProductSize{
	ProductSize39,
	ProductSize40,
	ProductSize41,
	ProductSize42,
	ProductSize43,
	ProductSize44,
}

func (s ProductSize) Valid() bool {
	for _, size := range ProductSizes {
		if s == size {
			return true
		}
	}
	return false
}

type CartAction string

const (
	CartActionIncrement CartAction = "increment"
	CartActionDecrement CartAction = "decrement"
	CartActionSet       CartAction = "set"
)

func (a CartAction) Valid() bool {
	switch a {
	case CartActionIncrement, CartActionDecrement, CartActionSet:
		return true
	}
	return false
}
