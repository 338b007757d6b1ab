// internal/handlers/cart.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/elite1357/store-backend/internal/i18n"
	"github.com/elite1357/store-backend/internal/models"
	"github.com/elite1357/store-backend/internal/services"
	"github.com/elite1357/store-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// customerFromContext resolves the shopping profile for the authenticated user,
// creating it on first use.
func customerFromContext(c *gin.Context, cartService *services.CartService) (*models.Customer, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return nil, false
	}

	customer, err := cartService.CustomerForUser(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return nil, false
	}
	return customer, true
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	customer, ok := customerFromContext(c, h.cartService)
	if !ok {
		return
	}

	order, err := h.cartService.Cart(customer.ID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, cartPayload(order))
}

// POST /cart/items/:product_id/:action
func (h *CartHandler) AdjustItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	customer, ok := customerFromContext(c, h.cartService)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "product_id"), nil)
		return
	}

	action := models.CartAction(c.Param("action"))
	if !action.Valid() {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartInvalidAction), nil)
		return
	}

	// The set action carries its target quantity in the body.
	var req struct {
		Value int `json:"value"`
	}
	if action == models.CartActionSet {
		if err := c.ShouldBindJSON(&req); err != nil || req.Value < 0 {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "value"), nil)
			return
		}
	}

	order, err := h.cartService.AdjustItem(customer.ID, productID, action, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "product")
		case errors.Is(err, services.ErrInsufficientStock):
			utils.UnprocessableResponse(c, "INSUFFICIENT_STOCK", i18n.T(lang, i18n.KeyCartInsufficientStock))
		case errors.Is(err, services.ErrInvalidCartAction):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartInvalidAction), nil)
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, cartPayload(order))
}

// POST /cart/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	customer, ok := customerFromContext(c, h.cartService)
	if !ok {
		return
	}

	if err := h.cartService.Clear(customer.ID); err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
	})
}

func cartPayload(order *models.Order) gin.H {
	return gin.H{
		"order":          order,
		"total_price":    order.TotalPrice(),
		"total_quantity": order.TotalQuantity(),
	}
}
