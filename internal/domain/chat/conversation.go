package chat

import "time"

// Conversation groups an ordered exchange of messages. The owner is an
// opaque external user identifier; a nil owner means the conversation
// was started by a guest.
type Conversation struct {
	ID        string
	UserID    *string
	Topic     *string
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateConversationParams carries the caller supplied fields for a new
// conversation.
type CreateConversationParams struct {
	UserID   *string
	Topic    *string
	Metadata map[string]any
}

// UpdateConversationParams carries the mutable conversation fields. Nil
// pointers leave the stored value untouched.
type UpdateConversationParams struct {
	Topic    *string
	Metadata map[string]any
}
