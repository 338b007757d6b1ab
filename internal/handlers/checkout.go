// internal/handlers/checkout.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/elite1357/store-backend/internal/i18n"
	"github.com/elite1357/store-backend/internal/services"
	"github.com/elite1357/store-backend/internal/utils"
)

const webhookMaxBodyBytes = 65536

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	cartService     *services.CartService
	catalogService  *services.CatalogService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService, cartService *services.CartService, catalogService *services.CatalogService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		cartService:     cartService,
		catalogService:  catalogService,
	}
}

// GET /checkout
// Returns the cart snapshot together with the cities offered for shipping.
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	customer, ok := customerFromContext(c, h.cartService)
	if !ok {
		return
	}

	order, err := h.cartService.Cart(customer.ID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	cities, err := h.catalogService.Cities()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order":          order,
		"total_price":    order.TotalPrice(),
		"total_quantity": order.TotalQuantity(),
		"cities":         cities,
	})
}

// POST /checkout/session
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	customer, ok := customerFromContext(c, h.cartService)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	session, err := h.checkoutService.CreateSession(customer.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderEmpty):
			utils.UnprocessableResponse(c, "ORDER_EMPTY", i18n.T(lang, i18n.KeyValidationInvalid, "order"))
		case errors.Is(err, services.ErrCityNotFound):
			utils.NotFoundResponse(c, "city")
		case errors.Is(err, services.ErrPaymentSession):
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyCheckoutSessionFailed))
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"checkout": session})
}

// GET /checkout/success
// Redirect landing after a successful payment. Completing the order here is
// idempotent with the webhook path.
func (h *CheckoutHandler) PaymentSuccess(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	customer, ok := customerFromContext(c, h.cartService)
	if !ok {
		return
	}

	if err := h.checkoutService.FinalizeActiveOrder(customer.ID); err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPaymentSuccess),
	})
}

// POST /webhooks/stripe
func (h *CheckoutHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookMaxBodyBytes))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.checkoutService.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		logrus.WithError(err).Warn("Stripe webhook rejected")
		c.Status(http.StatusBadRequest)
		return
	}

	c.Status(http.StatusOK)
}
