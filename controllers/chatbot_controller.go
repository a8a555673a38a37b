package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthed-zw/backend/chatbot"
	"github.com/healthed-zw/backend/utils"
)

// ChatbotController fronts the FAQ matcher.
type ChatbotController struct{}

// NewChatbotController creates a ChatbotController.
func NewChatbotController() *ChatbotController {
	return &ChatbotController{}
}

// Message answers one free-text message against the FAQ list.
func (c *ChatbotController) Message(ctx *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40091, "invalid request payload")
		return
	}

	reply, matched := chatbot.Answer(strings.TrimSpace(req.Message))
	utils.Success(ctx, gin.H{"reply": reply, "matched": matched})
}

// FAQs lists the FAQ entries so clients can render quick-pick questions.
func (c *ChatbotController) FAQs(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"faqs": chatbot.FAQs()})
}
