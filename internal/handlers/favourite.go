// internal/handlers/favourite.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/elite1357/store-backend/internal/i18n"
	"github.com/elite1357/store-backend/internal/services"
	"github.com/elite1357/store-backend/internal/utils"
)

type FavouriteHandler struct {
	favouriteService    *services.FavouriteService
	notificationService *services.NotificationService
}

func NewFavouriteHandler(favouriteService *services.FavouriteService, notificationService *services.NotificationService) *FavouriteHandler {
	return &FavouriteHandler{
		favouriteService:    favouriteService,
		notificationService: notificationService,
	}
}

// POST /favourites/:slug
// Toggles the product in the user's favourites list.
func (h *FavouriteHandler) ToggleFavourite(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	favourited, err := h.favouriteService.Toggle(userID, c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	messageKey := i18n.KeyFavouriteRemoved
	if favourited {
		messageKey = i18n.KeyFavouriteAdded
	}

	utils.SuccessResponse(c, gin.H{
		"favourited": favourited,
		"message":    i18n.T(lang, messageKey),
	})
}

// GET /favourites
func (h *FavouriteHandler) ListFavourites(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	products, err := h.favouriteService.List(userID)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"products": products})
}

// POST /subscriptions
func (h *FavouriteHandler) Subscribe(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	// Subscriptions work for guests too; attach the user when present.
	var userID *uuid.UUID
	if userIDStr, exists := utils.GetUserIDFromContext(c); exists {
		if parsed, err := uuid.Parse(userIDStr); err == nil {
			userID = &parsed
		}
	}

	subscription, err := h.favouriteService.Subscribe(req.Email, userID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySubscribed) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyMailAlreadyExists))
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyMailSubscribed),
		"subscription": subscription,
	})
}

// POST /subscriptions/broadcast
func (h *FavouriteHandler) Broadcast(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Subject string `json:"subject" validate:"required,min=1,max=255"`
		Text    string `json:"text" validate:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	sent, failed, err := h.notificationService.Broadcast(req.Subject, req.Text)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyMailBroadcastSent),
		"sent":    sent,
		"failed":  failed,
	})
}

func parseUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return userID, true
}
