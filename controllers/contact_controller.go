package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthed-zw/backend/config"
	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/store"
	"github.com/healthed-zw/backend/utils"
)

// ContactController receives contact-form submissions. Messages are stored
// and a notification email is sent best effort; a broken mailer never fails
// the request.
type ContactController struct {
	kv store.KV
}

// NewContactController creates a ContactController.
func NewContactController(kv store.KV) *ContactController {
	return &ContactController{kv: kv}
}

// SubmitMessage stores a contact message and notifies the configured inbox.
func (c *ContactController) SubmitMessage(ctx *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject"`
		Message string `json:"message" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40090, "invalid request payload")
		return
	}

	msg := models.ContactMessage{
		ID:        utils.NewID(),
		Name:      utils.Sanitize(strings.TrimSpace(req.Name)),
		Email:     strings.TrimSpace(req.Email),
		Subject:   utils.Sanitize(strings.TrimSpace(req.Subject)),
		Message:   utils.Sanitize(req.Message),
		CreatedAt: nowStamp(),
	}

	_, err := store.Mutate(ctx.Request.Context(), c.kv, store.KeyContact,
		func(cur []models.ContactMessage) ([]models.ContactMessage, error) {
			return append(cur, msg), nil
		})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50095, "failed to save message")
		return
	}

	if inbox := config.Get().ContactInbox; inbox != "" {
		go func(m models.ContactMessage) {
			subject := m.Subject
			if subject == "" {
				subject = "New contact message"
			}
			body := fmt.Sprintf("From: %s <%s>\n\n%s", m.Name, m.Email, m.Message)
			if err := utils.SendMail(inbox, subject, body); err != nil && utils.Sugar != nil {
				utils.Sugar.Warnf("contact notification failed: %v", err)
			}
		}(msg)
	}

	utils.Success(ctx, gin.H{"message": "message received"})
}
