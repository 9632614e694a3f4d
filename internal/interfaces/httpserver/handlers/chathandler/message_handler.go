package chathandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexislara/backend-chat-ia/internal/domain/chat"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/metrics"
	"github.com/alexislara/backend-chat-ia/internal/interfaces/httpserver/middlewares"
	chatrequests "github.com/alexislara/backend-chat-ia/internal/interfaces/httpserver/requests/chat"
	"github.com/alexislara/backend-chat-ia/internal/interfaces/httpserver/responses"
	chatresponses "github.com/alexislara/backend-chat-ia/internal/interfaces/httpserver/responses/chat"
	"github.com/alexislara/backend-chat-ia/internal/utils/platformerrors"
)

// MessageHandler serves the message routes, including the AI turn
// entry point.
type MessageHandler struct {
	service *chat.Service
}

func NewMessageHandler(service *chat.Service) *MessageHandler {
	return &MessageHandler{service: service}
}

// List handles GET /message/
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.service.ListMessages(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list messages")
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewMessageListResponse(messages))
}

// Get handles GET /message/:id/
func (h *MessageHandler) Get(c *gin.Context) {
	message, err := h.service.GetMessage(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get message")
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewMessageResponse(message))
}

// Create handles POST /message/
func (h *MessageHandler) Create(c *gin.Context) {
	var req chatrequests.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
		return
	}

	message, err := h.service.CreateMessage(c.Request.Context(), chat.CreateMessageParams{
		ConversationID:  req.Conversation,
		SenderType:      chat.SenderType(req.SenderType),
		TextContent:     req.TextContent,
		TokenCount:      req.TokenCount,
		ModelName:       req.ModelName,
		RawResponseData: req.RawResponseData,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create message")
		return
	}

	c.JSON(http.StatusCreated, chatresponses.NewMessageResponse(message))
}

// UpdateFeedback handles PATCH /message/:id/feedback/
func (h *MessageHandler) UpdateFeedback(c *gin.Context) {
	var req chatrequests.UpdateMessageFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
		return
	}

	message, err := h.service.UpdateMessageFeedback(c.Request.Context(), c.Param("id"), chat.UpdateMessageFeedbackParams{
		FeedbackRating: req.FeedbackRating,
		FeedbackNotes:  req.FeedbackNotes,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to update message feedback")
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewMessageResponse(message))
}

// GenerateAIResponse handles POST /message/generate-ai-response/
func (h *MessageHandler) GenerateAIResponse(c *gin.Context) {
	var req chatrequests.GenerateAIResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "The 'text' field is required.")
		return
	}

	result, err := h.service.GenerateAIResponse(c.Request.Context(), chat.GenerateTurnParams{
		Text:           req.Text,
		ConversationID: req.ConversationID,
		CallerID:       middlewares.CallerID(c),
	})
	if err != nil {
		metrics.TurnsTotal.WithLabelValues(metrics.TurnOutcomeError).Inc()
		responses.HandleError(c, err, "failed to generate AI response")
		return
	}

	outcome := metrics.TurnOutcomeSuccess
	modelName := ""
	if result.Message.ModelName != nil {
		modelName = *result.Message.ModelName
	}
	if modelName == "N/A" {
		outcome = metrics.TurnOutcomeFallback
	}
	tokens := 0
	if result.Message.TokenCount != nil {
		tokens = *result.Message.TokenCount
	}
	metrics.RecordTurn(outcome, modelName, tokens)

	c.JSON(http.StatusCreated, chatresponses.NewTurnResponse(result))
}
