// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAdminAccessDenied      = "admin.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Catalog
	KeyCategoryNotFound = "category.not_found"
	KeyProductNotFound  = "product.not_found"
	KeyReviewCreated    = "review.created"

	// Cart
	KeyCartItemAdded        = "cart.item_added"
	KeyCartItemRemoved      = "cart.item_removed"
	KeyCartCleared          = "cart.cleared"
	KeyCartInsufficientStock = "cart.insufficient_stock"
	KeyCartInvalidAction    = "cart.invalid_action"

	// Checkout
	KeyCheckoutSessionFailed = "checkout.session_failed"
	KeyPaymentSuccess        = "payment.success"

	// Favourites & mailing
	KeyFavouriteAdded     = "favourite.added"
	KeyFavouriteRemoved   = "favourite.removed"
	KeyMailSubscribed     = "mail.subscribed"
	KeyMailAlreadyExists  = "mail.already_exists"
	KeyMailBroadcastSent  = "mail.broadcast_sent"
)
