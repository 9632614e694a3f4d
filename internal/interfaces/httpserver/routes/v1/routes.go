package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/alexislara/backend-chat-ia/internal/interfaces/httpserver/handlers/chathandler"
)

// Routes encapsulates route registration.
type Routes struct {
	conversations *chathandler.ConversationHandler
	messages      *chathandler.MessageHandler
}

func NewRoutes(conversations *chathandler.ConversationHandler, messages *chathandler.MessageHandler) *Routes {
	return &Routes{
		conversations: conversations,
		messages:      messages,
	}
}

// Register attaches all routes. There is no DELETE on either resource.
func (r *Routes) Register(router gin.IRouter) {
	router.GET("/conversation/", r.conversations.List)
	router.POST("/conversation/", r.conversations.Create)
	router.GET("/conversation/:id/", r.conversations.Get)
	router.PUT("/conversation/:id/", r.conversations.Update)
	router.PATCH("/conversation/:id/", r.conversations.Update)

	router.GET("/message/", r.messages.List)
	router.GET("/message/:id/", r.messages.Get)
	router.POST("/message/", r.messages.Create)
	router.PATCH("/message/:id/feedback/", r.messages.UpdateFeedback)
	router.POST("/message/generate-ai-response/", r.messages.GenerateAIResponse)
}
