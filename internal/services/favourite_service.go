// internal/services/favourite_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elite1357/store-backend/internal/models"
)

// FavouriteService covers the user-product bookmarks and the mailing list.
type FavouriteService struct {
	db *gorm.DB
}

func NewFavouriteService(db *gorm.DB) *FavouriteService {
	return &FavouriteService{db: db}
}

// Toggle creates the (user, product) bookmark when absent and deletes it when
// present. Returns true when the product ended up favourited.
func (s *FavouriteService) Toggle(userID uuid.UUID, productSlug string) (bool, error) {
	var product models.Product
	if err := s.db.First(&product, "slug = ?", productSlug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductNotFound
		}
		return false, fmt.Errorf("failed to load product: %w", err)
	}

	var favourite models.FavouriteProduct
	err := s.db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&favourite).Error
	if err == nil {
		if err := s.db.Delete(&favourite).Error; err != nil {
			return false, fmt.Errorf("failed to remove favourite: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to load favourite: %w", err)
	}

	favourite = models.FavouriteProduct{UserID: userID, ProductID: product.ID}
	if err := s.db.Create(&favourite).Error; err != nil {
		if isUniqueViolation(err) {
			// Toggled twice at once; the other request created it.
			return true, nil
		}
		return false, fmt.Errorf("failed to add favourite: %w", err)
	}
	return true, nil
}

func (s *FavouriteService) List(userID uuid.UUID) ([]models.Product, error) {
	var favourites []models.FavouriteProduct
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").Preload("Product.Images").Preload("Product.Category").
		Order("created_at DESC").
		Find(&favourites).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch favourites: %w", err)
	}

	products := make([]models.Product, 0, len(favourites))
	for _, favourite := range favourites {
		products = append(products, favourite.Product)
	}
	return products, nil
}

// Subscribe adds an email to the mailing list. The global unique constraint
// on the email column is the source of truth; a duplicate from any user
// reports ErrAlreadySubscribed.
func (s *FavouriteService) Subscribe(email string, userID *uuid.UUID) (*models.MailSubscription, error) {
	subscription := &models.MailSubscription{
		Email:  email,
		UserID: userID,
	}
	if err := s.db.Create(subscription).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}
	return subscription, nil
}
