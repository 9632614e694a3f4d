package chat

// CreateConversationRequest is the body of POST /conversation/.
type CreateConversationRequest struct {
	Topic    *string        `json:"topic"`
	Metadata map[string]any `json:"metadata"`
}

// UpdateConversationRequest is the body of PUT and PATCH
// /conversation/:id/. Absent fields are left unchanged.
type UpdateConversationRequest struct {
	Topic    *string        `json:"topic"`
	Metadata map[string]any `json:"metadata"`
}

// CreateMessageRequest is the body of POST /message/.
type CreateMessageRequest struct {
	Conversation    string         `json:"conversation"`
	SenderType      string         `json:"sender_type"`
	TextContent     string         `json:"text_content"`
	TokenCount      *int           `json:"token_count"`
	ModelName       *string        `json:"model_name"`
	RawResponseData map[string]any `json:"raw_response_data"`
}

// UpdateMessageFeedbackRequest is the body of PATCH /message/:id/feedback/.
type UpdateMessageFeedbackRequest struct {
	FeedbackRating *int    `json:"feedback_rating"`
	FeedbackNotes  *string `json:"feedback_notes"`
}

// GenerateAIResponseRequest is the body of POST /message/generate-ai-response/.
type GenerateAIResponseRequest struct {
	Text           string  `json:"text"`
	ConversationID *string `json:"conversation_id"`
}
