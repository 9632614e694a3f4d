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

// ConversationHandler serves the conversation CRUD routes.
type ConversationHandler struct {
	service *chat.Service
}

func NewConversationHandler(service *chat.Service) *ConversationHandler {
	return &ConversationHandler{service: service}
}

// List handles GET /conversation/
func (h *ConversationHandler) List(c *gin.Context) {
	conversations, err := h.service.ListConversations(c.Request.Context())
	if err != nil {
		responses.HandleError(c, err, "failed to list conversations")
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewConversationListResponse(conversations))
}

// Create handles POST /conversation/
func (h *ConversationHandler) Create(c *gin.Context) {
	var req chatrequests.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
		return
	}

	conversation, err := h.service.CreateConversation(c.Request.Context(), chat.CreateConversationParams{
		UserID:   middlewares.CallerID(c),
		Topic:    req.Topic,
		Metadata: req.Metadata,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to create conversation")
		return
	}

	metrics.ConversationsCreatedTotal.Inc()
	c.JSON(http.StatusCreated, chatresponses.NewConversationResponse(conversation))
}

// Get handles GET /conversation/:id/
func (h *ConversationHandler) Get(c *gin.Context) {
	conversation, err := h.service.GetConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get conversation")
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewConversationResponse(conversation))
}

// Update handles PUT and PATCH /conversation/:id/
func (h *ConversationHandler) Update(c *gin.Context) {
	var req chatrequests.UpdateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body")
		return
	}

	conversation, err := h.service.UpdateConversation(c.Request.Context(), c.Param("id"), chat.UpdateConversationParams{
		Topic:    req.Topic,
		Metadata: req.Metadata,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to update conversation")
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewConversationResponse(conversation))
}
