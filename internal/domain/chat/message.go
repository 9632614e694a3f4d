package chat

import "time"

// SenderType identifies which side of the dialogue produced a message.
type SenderType string

const (
	SenderTypeUser  SenderType = "user"
	SenderTypeModel SenderType = "model"
)

// IsValid reports whether the sender type is one of the accepted values.
func (s SenderType) IsValid() bool {
	return s == SenderTypeUser || s == SenderTypeModel
}

// Feedback rating values.
const (
	FeedbackRatingBad  = 0
	FeedbackRatingGood = 1
)

// Message is a single turn half inside a conversation. Model messages
// carry the provider bookkeeping fields; user messages leave them empty.
type Message struct {
	ID              string
	ConversationID  string
	SenderType      SenderType
	TextContent     string
	TokenCount      *int
	ModelName       *string
	RawResponseData map[string]any
	FeedbackRating  *int
	FeedbackNotes   *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateMessageParams carries the caller supplied fields for the direct
// message creation path.
type CreateMessageParams struct {
	ConversationID  string
	SenderType      SenderType
	TextContent     string
	TokenCount      *int
	ModelName       *string
	RawResponseData map[string]any
}

// UpdateMessageFeedbackParams carries the only mutable message fields.
type UpdateMessageFeedbackParams struct {
	FeedbackRating *int
	FeedbackNotes  *string
}
