package chat

import (
	"time"

	domain "github.com/alexislara/backend-chat-ia/internal/domain/chat"
)

// ConversationResponse is the serialized conversation.
type ConversationResponse struct {
	ID       string         `json:"id"`
	User     *string        `json:"user"`
	Topic    *string        `json:"topic"`
	Metadata map[string]any `json:"metadata"`
	Created  time.Time      `json:"created"`
	Modified time.Time      `json:"modified"`
}

// MessageResponse is the serialized message.
type MessageResponse struct {
	ID              string         `json:"id"`
	Conversation    string         `json:"conversation"`
	SenderType      string         `json:"sender_type"`
	TextContent     string         `json:"text_content"`
	TokenCount      *int           `json:"token_count"`
	ModelName       *string        `json:"model_name"`
	RawResponseData map[string]any `json:"raw_response_data"`
	FeedbackRating  *int           `json:"feedback_rating"`
	FeedbackNotes   *string        `json:"feedback_notes"`
	Created         time.Time      `json:"created"`
	Modified        time.Time      `json:"modified"`
}

// TurnResponse is a message response extended with the conversation
// identifier the client needs to continue the dialogue.
type TurnResponse struct {
	MessageResponse
	ConversationID string `json:"conversation_id"`
}

// NewConversationResponse serializes a domain conversation.
func NewConversationResponse(c *domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:       c.ID,
		User:     c.UserID,
		Topic:    c.Topic,
		Metadata: c.Metadata,
		Created:  c.CreatedAt,
		Modified: c.UpdatedAt,
	}
}

// NewConversationListResponse serializes a conversation list.
func NewConversationListResponse(conversations []domain.Conversation) []ConversationResponse {
	result := make([]ConversationResponse, 0, len(conversations))
	for i := range conversations {
		result = append(result, NewConversationResponse(&conversations[i]))
	}
	return result
}

// NewMessageResponse serializes a domain message.
func NewMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:              m.ID,
		Conversation:    m.ConversationID,
		SenderType:      string(m.SenderType),
		TextContent:     m.TextContent,
		TokenCount:      m.TokenCount,
		ModelName:       m.ModelName,
		RawResponseData: m.RawResponseData,
		FeedbackRating:  m.FeedbackRating,
		FeedbackNotes:   m.FeedbackNotes,
		Created:         m.CreatedAt,
		Modified:        m.UpdatedAt,
	}
}

// NewMessageListResponse serializes a message list.
func NewMessageListResponse(messages []domain.Message) []MessageResponse {
	result := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, NewMessageResponse(&messages[i]))
	}
	return result
}

// NewTurnResponse serializes the result of one AI turn.
func NewTurnResponse(result *domain.TurnResult) TurnResponse {
	return TurnResponse{
		MessageResponse: NewMessageResponse(&result.Message),
		ConversationID:  result.ConversationID,
	}
}
