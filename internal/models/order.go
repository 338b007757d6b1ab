// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is the cart while IsCompleted is false. A partial unique index
// (created in database.RunMigrations) guarantees at most one open order per
// customer; payment success flips IsCompleted and a fresh open order is
// created lazily on the next add-to-cart.
type Order struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CustomerID  uuid.UUID  `json:"customer_id" gorm:"type:uuid;not null;index"`
	IsCompleted bool       `json:"is_completed" gorm:"not null;default:false"`
	Shipping    bool       `json:"shipping" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Relationships
	Customer Customer    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Items    []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TotalPrice sums unit price times quantity over the preloaded items.
// Pure; callers must have loaded Items.
func (o *Order) TotalPrice() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	return total
}

// TotalQuantity sums line quantities over the preloaded items.
func (o *Order) TotalQuantity() int {
	var total int
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// OrderItem snapshots the product title and unit price at add time so a
// completed order survives later product deletion or repricing intact.
type OrderItem struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID      uuid.UUID `json:"order_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_product"`
	ProductID    uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_items_order_product"`
	ProductTitle string    `json:"product_title" gorm:"size:150;not null"`
	UnitPrice    int64     `json:"unit_price" gorm:"not null"`
	Quantity     int       `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`
	AddedAt      time.Time `json:"added_at" gorm:"autoCreateTime"`

	Order   Order   `json:"-" gorm:"foreignKey:OrderID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (i *OrderItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

type ShippingAddress struct {
	BaseModel
	CustomerID uuid.UUID `json:"customer_id" gorm:"type:uuid;not null;index"`
	OrderID    uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	Address    string    `json:"address" gorm:"size:255;not null"`
	CityID     uuid.UUID `json:"city_id" gorm:"type:uuid;not null"`
	State      string    `json:"state" gorm:"size:255"`
	Phone      string    `json:"phone" gorm:"size:255"`

	Customer Customer `json:"-" gorm:"foreignKey:CustomerID"`
	Order    Order    `json:"-" gorm:"foreignKey:OrderID"`
	City     City     `json:"city,omitempty" gorm:"foreignKey:CityID"`
}

// City is a seeded lookup list for the checkout form.
type City struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name string    `json:"name" gorm:"size:255;uniqueIndex;not null"`
}
