// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elite1357/store-backend/internal/models"
	"github.com/elite1357/store-backend/internal/utils"
)

// CatalogService is the read side of the store plus the admin write
// operations behind it.
type CatalogService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Title    string     `json:"title" validate:"required,min=1,max=150"`
	Slug     string     `json:"slug,omitempty" validate:"omitempty,slug"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type CreateProductRequest struct {
	Title        string             `json:"title" validate:"required,min=1,max=150"`
	Slug         string             `json:"slug,omitempty" validate:"omitempty,slug"`
	Price        int64              `json:"price" validate:"min=0"`
	Quantity     int                `json:"quantity" validate:"min=0"`
	Size         models.ProductSize `json:"size" validate:"required"`
	Descriptions string             `json:"descriptions,omitempty"`
	CategoryID   uuid.UUID          `json:"category_id" validate:"required"`
}

type UpdateProductRequest struct {
	Title        string              `json:"title,omitempty" validate:"omitempty,min=1,max=150"`
	Price        *int64              `json:"price,omitempty" validate:"omitempty,min=0"`
	Quantity     *int                `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Size         *models.ProductSize `json:"size,omitempty"`
	Descriptions string              `json:"descriptions,omitempty"`
	CategoryID   *uuid.UUID          `json:"category_id,omitempty"`
}

type CreateReviewRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// TopLevelCategories lists the storefront navigation tree.
func (s *CatalogService) TopLevelCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("parent_id IS NULL").
		Preload("Subcategories").
		Order("title").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) CategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.Preload("Subcategories").First(&category, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return &category, nil
}

// ProductsByCategory pages products under a top-level category (aggregating
// its subcategories) or, when typeSlug is set, under that one subcategory.
func (s *CatalogService) ProductsByCategory(slug, typeSlug string, params utils.PaginationParams) ([]models.Product, int64, error) {
	var categoryIDs []uuid.UUID

	if typeSlug != "" {
		sub, err := s.CategoryBySlug(typeSlug)
		if err != nil {
			return nil, 0, err
		}
		categoryIDs = []uuid.UUID{sub.ID}
	} else {
		category, err := s.CategoryBySlug(slug)
		if err != nil {
			return nil, 0, err
		}
		categoryIDs = []uuid.UUID{category.ID}
		for _, sub := range category.Subcategories {
			categoryIDs = append(categoryIDs, sub.ID)
		}
	}

	query := s.db.Model(&models.Product{}).
		Where("category_id IN ?", categoryIDs).
		Preload("Images").Preload("Category")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "price", "size", "title"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *CatalogService) ProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Preload("Images").
		First(&product, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

func (s *CatalogService) ReviewsForProduct(productID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Where("product_id = ?", productID).
		Preload("Author").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

func (s *CatalogService) CreateReview(authorID uuid.UUID, productSlug string, req *CreateReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.ProductBySlug(productSlug)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		Text:      req.Text,
		AuthorID:  authorID,
		ProductID: product.ID,
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.db.Preload("Author").First(review, "id = ?", review.ID)
	return review, nil
}

// RelatedProducts picks up to n random distinct products other than the one
// shown. Sampling is without replacement, so it terminates and never repeats
// even when the catalog holds fewer than n products.
func (s *CatalogService) RelatedProducts(productID uuid.UUID, n int) ([]models.Product, error) {
	var candidates []models.Product
	if err := s.db.Where("id <> ?", productID).
		Preload("Images").
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return sampleProducts(candidates, n), nil
}

// sampleProducts draws up to n products via a partial Fisher-Yates shuffle.
func sampleProducts(candidates []models.Product, n int) []models.Product {
	if n <= 0 || len(candidates) == 0 {
		return []models.Product{}
	}
	if n > len(candidates) {
		n = len(candidates)
	}

	picked := make([]models.Product, len(candidates))
	copy(picked, candidates)

	for i := 0; i < n; i++ {
		j := i + rand.Intn(len(picked)-i)
		picked[i], picked[j] = picked[j], picked[i]
	}

	return picked[:n]
}

func (s *CatalogService) Cities() ([]models.City, error) {
	var cities []models.City
	if err := s.db.Order("name").Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cities: %w", err)
	}
	return cities, nil
}

// Admin write operations

func (s *CatalogService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.ParentID != nil {
		var parent models.Category
		if err := s.db.First(&parent, "id = ?", *req.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to load parent category: %w", err)
		}
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}

	category := &models.Category{
		Title:    req.Title,
		Slug:     slug,
		ParentID: req.ParentID,
	}
	if err := s.db.Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			unique, slugErr := utils.UniqueSlug(req.Title)
			if slugErr != nil {
				return nil, slugErr
			}
			category.Slug = unique
			if err := s.db.Create(category).Error; err != nil {
				return nil, fmt.Errorf("failed to create category: %w", err)
			}
			return category, nil
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CatalogService) DeleteCategory(id uuid.UUID) error {
	res := s.db.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *CatalogService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Size.Valid() {
		return nil, fmt.Errorf("invalid product size %q", req.Size)
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}

	product := &models.Product{
		Title:        req.Title,
		Slug:         slug,
		Price:        req.Price,
		Quantity:     req.Quantity,
		Size:         req.Size,
		Descriptions: req.Descriptions,
		CategoryID:   req.CategoryID,
	}
	if err := s.db.Create(product).Error; err != nil {
		if isUniqueViolation(err) {
			unique, slugErr := utils.UniqueSlug(req.Title)
			if slugErr != nil {
				return nil, slugErr
			}
			product.Slug = unique
			if err := s.db.Create(product).Error; err != nil {
				return nil, fmt.Errorf("failed to create product: %w", err)
			}
			return product, nil
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Size != nil {
		if !req.Size.Valid() {
			return nil, fmt.Errorf("invalid product size %q", *req.Size)
		}
		updates["size"] = *req.Size
	}
	if req.Descriptions != "" {
		updates["descriptions"] = req.Descriptions
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to load category: %w", err)
		}
		updates["category_id"] = *req.CategoryID
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	s.db.Preload("Category").Preload("Images").First(&product, "id = ?", id)
	return &product, nil
}

// DeleteProduct removes a product along with its gallery and reviews.
// Completed order lines keep their title and price snapshots.
func (s *CatalogService) DeleteProduct(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.GalleryImage{}).Error; err != nil {
			return fmt.Errorf("failed to delete gallery: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews: %w", err)
		}
		return nil
	})
}

func (s *CatalogService) AddGalleryImage(productID uuid.UUID, url, storageKey string) (*models.GalleryImage, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	image := &models.GalleryImage{
		ProductID:  productID,
		URL:        url,
		StorageKey: storageKey,
	}
	if err := s.db.Create(image).Error; err != nil {
		return nil, fmt.Errorf("failed to save gallery image: %w", err)
	}
	return image, nil
}
