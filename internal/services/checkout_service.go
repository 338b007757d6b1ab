// internal/services/checkout_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elite1357/store-backend/internal/config"
	"github.com/elite1357/store-backend/internal/models"
)

// CheckoutService bridges the cart to the payment processor and reconciles
// order state on the way back.
type CheckoutService struct {
	db           *gorm.DB
	config       *config.Config
	cartService  *CartService
	notification *NotificationService
}

type CheckoutRequest struct {
	Email     string    `json:"email" validate:"required,email"`
	Address   string    `json:"address" validate:"required,max=255"`
	CityID    uuid.UUID `json:"city_id" validate:"required"`
	State     string    `json:"state,omitempty" validate:"max=255"`
	Phone     string    `json:"phone,omitempty" validate:"max=255"`
	FirstName string    `json:"first_name,omitempty" validate:"max=255"`
	LastName  string    `json:"last_name,omitempty" validate:"max=255"`
}

type CheckoutSessionResponse struct {
	SessionID  string `json:"session_id"`
	SessionURL string `json:"session_url"`
}

func NewCheckoutService(db *gorm.DB, cfg *config.Config, cartService *CartService, notification *NotificationService) *CheckoutService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &CheckoutService{
		db:           db,
		config:       cfg,
		cartService:  cartService,
		notification: notification,
	}
}

// BuildSessionParams assembles the hosted-session request: one aggregate
// line carrying the whole cart total in minor units. Line-level itemization
// is deliberately not sent to the processor. Pure.
func BuildSessionParams(order *models.Order, cfg *config.Config) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(cfg.Payment.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("1357 ELITE order"),
					},
					UnitAmount: stripe.Int64(order.TotalPrice()),
				},
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(order.ID.String()),
		SuccessURL:        stripe.String(cfg.Frontend.BaseURL + "/payment_success"),
		CancelURL:         stripe.String(cfg.Frontend.BaseURL + "/cart"),
	}
}

// CreateSession snapshots the open cart, records the shipping address,
// emails the summary to the buyer-supplied address, and opens the hosted
// payment session. An email failure is logged, not fatal; a processor
// failure returns ErrPaymentSession with the cart untouched.
func (s *CheckoutService) CreateSession(customerID uuid.UUID, req *CheckoutRequest) (*CheckoutSessionResponse, error) {
	order, err := s.cartService.Cart(customerID)
	if err != nil {
		return nil, err
	}
	if len(order.Items) == 0 {
		return nil, ErrOrderEmpty
	}

	if err := s.saveShippingDetails(customerID, order.ID, req); err != nil {
		return nil, err
	}

	if err := s.notification.SendCartSummary(req.Email, order); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("Checkout summary email failed")
	}

	sess, err := session.New(BuildSessionParams(order, s.config))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentSession, err)
	}

	return &CheckoutSessionResponse{
		SessionID:  sess.ID,
		SessionURL: sess.URL,
	}, nil
}

func (s *CheckoutService) saveShippingDetails(customerID, orderID uuid.UUID, req *CheckoutRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var city models.City
		if err := tx.First(&city, "id = ?", req.CityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCityNotFound
			}
			return fmt.Errorf("failed to load city: %w", err)
		}

		if req.FirstName != "" || req.LastName != "" {
			updates := map[string]interface{}{}
			if req.FirstName != "" {
				updates["first_name"] = req.FirstName
			}
			if req.LastName != "" {
				updates["last_name"] = req.LastName
			}
			if err := tx.Model(&models.Customer{}).Where("id = ?", customerID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update customer: %w", err)
			}
		}

		address := models.ShippingAddress{
			CustomerID: customerID,
			OrderID:    orderID,
			Address:    req.Address,
			CityID:     req.CityID,
			State:      req.State,
			Phone:      req.Phone,
		}
		if err := tx.Create(&address).Error; err != nil {
			return fmt.Errorf("failed to save shipping address: %w", err)
		}
		return nil
	})
}

// CompleteOrder marks an order completed. Stock was already decremented as
// items entered the cart, so no further stock mutation happens here.
// Idempotent: completing a completed order is a no-op.
func (s *CheckoutService) CompleteOrder(orderID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to load order: %w", err)
		}

		if order.IsCompleted {
			return nil
		}

		now := time.Now()
		updates := map[string]interface{}{
			"is_completed": true,
			"completed_at": &now,
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to complete order: %w", err)
		}
		return nil
	})
}

// FinalizeActiveOrder completes the customer's current open order; the
// success-redirect endpoint uses it. Safe to call alongside the webhook.
func (s *CheckoutService) FinalizeActiveOrder(customerID uuid.UUID) error {
	order, err := s.cartService.Cart(customerID)
	if err != nil {
		return err
	}
	if len(order.Items) == 0 {
		// Webhook already finalized it and a fresh empty order was created.
		return nil
	}
	return s.CompleteOrder(order.ID)
}

// HandleWebhook verifies the processor's signature and reconciles order
// state. Session completion finalizes the order; expiry or cancellation is
// an explicit no-op, leaving the open cart and its stock reservations alone.
func (s *CheckoutService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.config.Payment.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("%w: signature verification failed: %v", ErrPaymentSession, err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to parse session event: %w", err)
		}

		orderID, err := uuid.Parse(sess.ClientReferenceID)
		if err != nil {
			return fmt.Errorf("invalid order reference %q: %w", sess.ClientReferenceID, err)
		}

		if err := s.CompleteOrder(orderID); err != nil {
			return err
		}

		logrus.WithField("order_id", orderID).Info("Order completed via payment webhook")

	case "checkout.session.expired":
		// The cart stays open with its items and stock reservations intact;
		// the customer can retry or clear it.
		logrus.WithField("event_id", event.ID).Info("Payment session expired; cart left open")

	default:
		logrus.WithField("event_type", event.Type).Debug("Ignoring payment webhook event")
	}

	return nil
}
