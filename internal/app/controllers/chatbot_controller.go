package controllers

import (
	"net/http"

	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/app/services"
	"github.com/futureintern/platform/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ChatbotController exposes the assistant
type ChatbotController struct {
	chatbotService services.ChatbotService
	logger         zerolog.Logger
}

// NewChatbotController creates a new ChatbotController
func NewChatbotController(chatbotService services.ChatbotService, logger zerolog.Logger) *ChatbotController {
	return &ChatbotController{
		chatbotService: chatbotService,
		logger:         logger,
	}
}

// Chat answers one message. The reply comes from the language model when it
// is configured and reachable, and from the keyword rules otherwise.
// @Summary Ask the assistant
// @Tags chatbot
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Message and optional history"
// @Success 200 {object} dto.APIResponse{data=dto.ChatResponse}
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /chatbot/chat [post]
func (c *ChatbotController) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.chatbotService.Chat(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// FAQ lists the canned topics
func (c *ChatbotController) FAQ(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FAQResponse{FAQs: c.chatbotService.FAQs()}))
}
