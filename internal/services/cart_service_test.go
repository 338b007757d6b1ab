// internal/services/cart_service_test.go
package services

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elite1357/store-backend/internal/database"
	"github.com/elite1357/store-backend/internal/models"
)

// CartServiceTestSuite exercises the cart engine against a real Postgres
// instance; the partial unique index and row locks it relies on have no
// in-memory stand-in. Set TEST_DATABASE_DSN to run it.
type CartServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	cartService *CartService

	customer models.Customer
	product  models.Product
}

func TestCartServiceSuite(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	suite.Run(t, &CartServiceTestSuite{db: db})
}

func (s *CartServiceTestSuite) SetupTest() {
	s.cartService = NewCartService(s.db)

	tables := []string{"order_items", "shipping_addresses", "orders", "favourite_products", "reviews", "gallery_images", "products", "categories", "customers", "mail_subscriptions", "users"}
	for _, table := range tables {
		s.Require().NoError(s.db.Exec("DELETE FROM " + table).Error)
	}

	s.customer = models.Customer{}
	s.Require().NoError(s.db.Create(&s.customer).Error)

	category := models.Category{Title: "Men", Slug: fmt.Sprintf("men-%s", uuid.New().String()[:8])}
	s.Require().NoError(s.db.Create(&category).Error)

	s.product = models.Product{
		Title:      "Runner",
		Slug:       fmt.Sprintf("runner-%s", uuid.New().String()[:8]),
		Price:      1000,
		Quantity:   5,
		Size:       models.ProductSize42,
		CategoryID: category.ID,
	}
	s.Require().NoError(s.db.Create(&s.product).Error)
}

func (s *CartServiceTestSuite) stock() int {
	var product models.Product
	s.Require().NoError(s.db.First(&product, "id = ?", s.product.ID).Error)
	return product.Quantity
}

func (s *CartServiceTestSuite) TestIncrementTwice() {
	_, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionIncrement, 0)
	s.Require().NoError(err)

	order, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionIncrement, 0)
	s.Require().NoError(err)

	s.Require().Len(order.Items, 1)
	s.Equal(2, order.Items[0].Quantity)
	s.Equal("Runner", order.Items[0].ProductTitle)
	s.Equal(int64(1000), order.Items[0].UnitPrice)
	s.Equal(int64(2000), order.TotalPrice())
	s.Equal(3, s.stock())
}

func (s *CartServiceTestSuite) TestDecrementRestoresStock() {
	_, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionIncrement, 0)
	s.Require().NoError(err)
	_, err = s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionIncrement, 0)
	s.Require().NoError(err)

	order, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionDecrement, 0)
	s.Require().NoError(err)

	s.Require().Len(order.Items, 1)
	s.Equal(1, order.Items[0].Quantity)
	s.Equal(4, s.stock())
}

func (s *CartServiceTestSuite) TestDecrementToZeroRemovesLine() {
	_, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionIncrement, 0)
	s.Require().NoError(err)

	order, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionDecrement, 0)
	s.Require().NoError(err)

	s.Empty(order.Items)
	s.Equal(5, s.stock())
}

func (s *CartServiceTestSuite) TestDecrementWithoutLineIsNoop() {
	order, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionDecrement, 0)
	s.Require().NoError(err)

	s.Empty(order.Items)
	s.Equal(5, s.stock())
}

func (s *CartServiceTestSuite) TestSetQuantity() {
	order, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionSet, 3)
	s.Require().NoError(err)

	s.Require().Len(order.Items, 1)
	s.Equal(3, order.Items[0].Quantity)
	s.Equal(2, s.stock())

	order, err = s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionSet, 1)
	s.Require().NoError(err)
	s.Equal(1, order.Items[0].Quantity)
	s.Equal(4, s.stock())

	order, err = s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionSet, 0)
	s.Require().NoError(err)
	s.Empty(order.Items)
	s.Equal(5, s.stock())
}

func (s *CartServiceTestSuite) TestInsufficientStock() {
	_, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionSet, 6)
	s.Require().ErrorIs(err, ErrInsufficientStock)

	// Nothing changed.
	order, err := s.cartService.Cart(s.customer.ID)
	s.Require().NoError(err)
	s.Empty(order.Items)
	s.Equal(5, s.stock())
}

func (s *CartServiceTestSuite) TestIncrementOutOfStock() {
	s.Require().NoError(s.db.Model(&models.Product{}).
		Where("id = ?", s.product.ID).
		UpdateColumn("quantity", 0).Error)

	_, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionIncrement, 0)
	s.Require().ErrorIs(err, ErrInsufficientStock)
}

func (s *CartServiceTestSuite) TestUnknownProduct() {
	_, err := s.cartService.AdjustItem(s.customer.ID, uuid.New(), models.CartActionIncrement, 0)
	s.Require().ErrorIs(err, ErrProductNotFound)
}

func (s *CartServiceTestSuite) TestClearKeepsOrderOpen() {
	order, err := s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionSet, 2)
	s.Require().NoError(err)
	orderID := order.ID

	s.Require().NoError(s.cartService.Clear(s.customer.ID))

	cleared, err := s.cartService.Cart(s.customer.ID)
	s.Require().NoError(err)
	s.Equal(orderID, cleared.ID)
	s.False(cleared.IsCompleted)
	s.Empty(cleared.Items)
	s.Equal(5, s.stock())
}

func (s *CartServiceTestSuite) TestSingleOpenOrderUnderConcurrency() {
	const workers = 4

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.cartService.AdjustItem(s.customer.ID, s.product.ID, models.CartActionIncrement, 0)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		s.Require().NoError(err)
	}

	var openOrders int64
	s.Require().NoError(s.db.Model(&models.Order{}).
		Where("customer_id = ? AND NOT is_completed", s.customer.ID).
		Count(&openOrders).Error)
	s.Equal(int64(1), openOrders)

	order, err := s.cartService.Cart(s.customer.ID)
	s.Require().NoError(err)
	s.Require().Len(order.Items, 1)
	s.Equal(workers, order.Items[0].Quantity)
	s.Equal(5-workers, s.stock())
}

func (s *CartServiceTestSuite) TestCustomerForUserCreatesOnce() {
	user := models.User{Username: "shopper", Email: "shopper@example.com", PasswordHash: "x"}
	s.Require().NoError(s.db.Create(&user).Error)

	first, err := s.cartService.CustomerForUser(user.ID)
	s.Require().NoError(err)

	second, err := s.cartService.CustomerForUser(user.ID)
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
}
