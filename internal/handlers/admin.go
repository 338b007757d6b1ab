// internal/handlers/admin.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/elite1357/store-backend/internal/i18n"
	"github.com/elite1357/store-backend/internal/services"
	"github.com/elite1357/store-backend/internal/utils"
)

// AdminHandler covers the catalog management surface.
type AdminHandler struct {
	catalogService *services.CatalogService
	storageService *services.StorageService
}

func NewAdminHandler(catalogService *services.CatalogService, storageService *services.StorageService) *AdminHandler {
	return &AdminHandler{
		catalogService: catalogService,
		storageService: storageService,
	}
}

// POST /admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	category, err := h.catalogService.CreateCategory(&req)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{"category": category})
}

// DELETE /admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(id); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if !req.Size.Valid() {
		utils.BadRequestResponse(c, "invalid size", nil)
		return
	}

	product, err := h.catalogService.CreateProduct(&req)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.NotFoundResponse(c, "category")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{"product": product})
}

// PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if req.Size != nil && !req.Size.Valid() {
		utils.BadRequestResponse(c, "invalid size", nil)
		return
	}

	product, err := h.catalogService.UpdateProduct(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "product")
		case errors.Is(err, services.ErrCategoryNotFound):
			utils.NotFoundResponse(c, "category")
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"product": product})
}

// DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /admin/products/:id/images
func (h *AdminHandler) UploadProductImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "image"), nil)
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, services.GalleryUploadOptions)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	image, err := h.catalogService.AddGalleryImage(id, result.URL, result.Key)
	if err != nil {
		// Keep storage consistent when the product row is gone.
		if delErr := h.storageService.DeleteFile(result.Key); delErr != nil {
			logrus.WithError(delErr).WithField("key", result.Key).Warn("Failed to remove orphaned upload")
		}
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{"image": image})
}

func parsePathID(c *gin.Context, name string) (uuid.UUID, bool) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, name), nil)
		return uuid.Nil, false
	}
	return id, true
}
