// internal/handlers/catalog.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elite1357/store-backend/internal/i18n"
	"github.com/elite1357/store-backend/internal/services"
	"github.com/elite1357/store-backend/internal/utils"
)

const defaultRelatedCount = 4

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.TopLevelCategories()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// GET /categories/:slug
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	slug := c.Param("slug")

	category, err := h.catalogService.CategoryBySlug(slug)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	products, total, err := h.catalogService.ProductsByCategory(slug, c.Query("type"), params)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"category": category,
		"products": products,
	}, gin.H{
		"pagination": gin.H{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

// GET /products?category=men&type=sneakers
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	categorySlug := c.Query("category")
	typeSlug := c.Query("type")
	if categorySlug == "" && typeSlug == "" {
		utils.BadRequestResponse(c, "category or type parameter is required", nil)
		return
	}

	params := utils.GetPaginationParams(c)
	products, total, err := h.catalogService.ProductsByCategory(categorySlug, typeSlug, params)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{"products": products}, gin.H{
		"pagination": gin.H{
			"page":  params.Page,
			"limit": params.Limit,
			"total": total,
		},
	})
}

// GET /products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.ProductBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	reviews, err := h.catalogService.ReviewsForProduct(product.ID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
		"reviews": reviews,
	})
}

// GET /products/:slug/related
func (h *CatalogHandler) GetRelatedProducts(c *gin.Context) {
	product, err := h.catalogService.ProductBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	count := defaultRelatedCount
	if raw := c.Query("count"); raw != "" {
		if parsed, parseErr := strconv.Atoi(raw); parseErr == nil && parsed > 0 && parsed <= 20 {
			count = parsed
		}
	}

	related, err := h.catalogService.RelatedProducts(product.ID, count)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"products": related})
}

// GET /products/:slug/reviews
func (h *CatalogHandler) ListReviews(c *gin.Context) {
	product, err := h.catalogService.ProductBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	reviews, err := h.catalogService.ReviewsForProduct(product.ID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"reviews": reviews})
}

// POST /products/:slug/reviews
func (h *CatalogHandler) CreateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.catalogService.CreateReview(userID, c.Param("slug"), &req)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewCreated),
		"review":  review,
	})
}

// GET /cities
func (h *CatalogHandler) ListCities(c *gin.Context) {
	cities, err := h.catalogService.Cities()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"cities": cities})
}
