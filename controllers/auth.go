package controllers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"nailbook-backend/services"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const webhookSecretHeader = "X-Webhook-Secret"

type AuthController struct {
	users         *services.UserService
	webhookSecret string
}

func NewAuthController(users *services.UserService, webhookSecret string) *AuthController {
	return &AuthController{users: users, webhookSecret: webhookSecret}
}

// Me returns the local account of the signed-in user
func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := ac.users.Resolve(c.Request.Context(), userID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// IdentityWebhook mirrors identity-provider users locally. Unknown event
// types are acknowledged and ignored.
func (ac *AuthController) IdentityWebhook(c *gin.Context) {
	if ac.webhookSecret != "" {
		got := c.GetHeader(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(ac.webhookSecret)) != 1 {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid webhook signature")
			return
		}
	}

	raw, err := c.GetRawData()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payload")
		return
	}
	var event services.IdentityEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	handled, err := ac.users.HandleEvent(c.Request.Context(), event)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	if !handled {
		utils.Logger(c).Debug("webhook event ignored", zap.String("type", event.Type))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "handled": handled})
}
