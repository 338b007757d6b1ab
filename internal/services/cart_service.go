// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elite1357/store-backend/internal/models"
)

// CartService maintains the single open order per customer and keeps product
// stock consistent with line-item quantities. Stock is reserved at add time,
// not at payment time.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// activeOrderRetries bounds re-running the transaction when a concurrent
// request wins the race to create the open order.
const activeOrderRetries = 3

// CustomerForUser finds the customer profile linked to a user account,
// creating it on first use.
func (s *CartService) CustomerForUser(userID uuid.UUID) (*models.Customer, error) {
	return customerForUser(s.db, userID)
}

func customerForUser(tx *gorm.DB, userID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := tx.Where("user_id = ?", userID).First(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	customer = models.Customer{UserID: &userID}
	if err := tx.Create(&customer).Error; err != nil {
		if isUniqueViolation(err) {
			// Concurrent first request created it; use that row.
			if err := tx.Where("user_id = ?", userID).First(&customer).Error; err != nil {
				return nil, fmt.Errorf("failed to load customer: %w", err)
			}
			return &customer, nil
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customer, nil
}

// ActiveOrder returns the customer's open order, creating one when absent.
// The partial unique index on orders(customer_id) WHERE NOT is_completed
// turns a create race into a unique violation which is resolved by
// re-reading the winner's row.
func (s *CartService) ActiveOrder(customerID uuid.UUID) (*models.Order, error) {
	var order *models.Order

	for attempt := 0; attempt < activeOrderRetries; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			order, txErr = activeOrderLocked(tx, customerID)
			return txErr
		})
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, ErrDuplicateActiveOrder) {
			return nil, err
		}
	}

	return nil, ErrDuplicateActiveOrder
}

// activeOrderLocked locks the open order row for the rest of the enclosing
// transaction, serializing cart mutations per customer.
func activeOrderLocked(tx *gorm.DB, customerID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ? AND NOT is_completed", customerID).
		First(&order).Error
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load open order: %w", err)
	}

	order = models.Order{CustomerID: customerID}
	if err := tx.Create(&order).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateActiveOrder
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

// AdjustItem applies a cart action to the (open order, product) line inside
// a single transaction. value is only read for CartActionSet.
//
// Stock changes are a single atomic conditional update; a change that would
// take stock negative fails with ErrInsufficientStock and mutates nothing.
func (s *CartService) AdjustItem(customerID, productID uuid.UUID, action models.CartAction, value int) (*models.Order, error) {
	if !action.Valid() {
		return nil, ErrInvalidCartAction
	}
	if action == models.CartActionSet && value < 0 {
		return nil, ErrInvalidCartAction
	}

	var orderID uuid.UUID

	for attempt := 0; attempt < activeOrderRetries; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			order, txErr := activeOrderLocked(tx, customerID)
			if txErr != nil {
				return txErr
			}
			orderID = order.ID
			return adjustItemLocked(tx, order, productID, action, value)
		})
		if err == nil {
			return s.loadOrder(orderID)
		}
		if !errors.Is(err, ErrDuplicateActiveOrder) {
			return nil, err
		}
	}

	return nil, ErrDuplicateActiveOrder
}

func adjustItemLocked(tx *gorm.DB, order *models.Order, productID uuid.UUID, action models.CartAction, value int) error {
	var product models.Product
	if err := tx.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to load product: %w", err)
	}

	var item models.OrderItem
	haveItem := true
	err := tx.Where("order_id = ? AND product_id = ?", order.ID, productID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load order item: %w", err)
		}
		haveItem = false
	}

	current := 0
	if haveItem {
		current = item.Quantity
	}

	var target int
	switch action {
	case models.CartActionIncrement:
		target = current + 1
	case models.CartActionDecrement:
		target = current - 1
		if target < 0 {
			// Nothing in the cart to remove; leave stock alone.
			return nil
		}
	case models.CartActionSet:
		target = value
	}

	delta := target - current
	if delta == 0 {
		return nil
	}

	if delta > 0 {
		// Atomic compare-and-decrement; zero rows means not enough stock.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", productID, delta).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", delta))
		if res.Error != nil {
			return fmt.Errorf("failed to reserve stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}
	} else {
		res := tx.Model(&models.Product{}).
			Where("id = ?", productID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", -delta))
		if res.Error != nil {
			return fmt.Errorf("failed to restore stock: %w", res.Error)
		}
	}

	switch {
	case target == 0:
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to delete order item: %w", err)
		}
	case haveItem:
		if err := tx.Model(&item).UpdateColumn("quantity", target).Error; err != nil {
			return fmt.Errorf("failed to update order item: %w", err)
		}
	default:
		item = models.OrderItem{
			OrderID:      order.ID,
			ProductID:    productID,
			ProductTitle: product.Title,
			UnitPrice:    product.Price,
			Quantity:     target,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	return nil
}

// Cart returns the open order with its items and products preloaded, ready
// for totals computation.
func (s *CartService) Cart(customerID uuid.UUID) (*models.Order, error) {
	order, err := s.ActiveOrder(customerID)
	if err != nil {
		return nil, err
	}
	return s.loadOrder(order.ID)
}

func (s *CartService) loadOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.added_at") }).
		Preload("Items.Product").
		Preload("Items.Product.Images").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &order, nil
}

// Clear deletes every line of the open order, restoring each product's stock
// by the deleted quantity. The order row itself stays open and empty.
func (s *CartService) Clear(customerID uuid.UUID) error {
	for attempt := 0; attempt < activeOrderRetries; attempt++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			order, txErr := activeOrderLocked(tx, customerID)
			if txErr != nil {
				return txErr
			}
			return clearOrderLocked(tx, order.ID)
		})
		if err == nil || !errors.Is(err, ErrDuplicateActiveOrder) {
			return err
		}
	}
	return ErrDuplicateActiveOrder
}

func clearOrderLocked(tx *gorm.DB, orderID uuid.UUID) error {
	var items []models.OrderItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}

	for _, item := range items {
		res := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to restore stock: %w", res.Error)
		}
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to delete order item: %w", err)
		}
	}

	return nil
}
