package dbschema

import (
	"github.com/alexislara/backend-chat-ia/internal/domain/chat"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/database"
	"gorm.io/datatypes"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Conversation represents the database schema for conversations
type Conversation struct {
	BaseModel
	UserID   *string           `gorm:"type:varchar(64);index"`
	Topic    *string           `gorm:"type:varchar(255)"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb"`

	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

// Message represents the database schema for messages
type Message struct {
	BaseModel
	ConversationID  string            `gorm:"type:varchar(26);index:idx_message_conversation_created;not null"`
	SenderType      string            `gorm:"type:varchar(10);not null"`
	TextContent     string            `gorm:"type:text;not null"`
	TokenCount      *int
	ModelName       *string           `gorm:"type:varchar(100)"`
	RawResponseData datatypes.JSONMap `gorm:"type:jsonb"`
	FeedbackRating  *int
	FeedbackNotes   *string           `gorm:"type:text"`
}

// NewSchemaConversation creates a database schema from a domain conversation
func NewSchemaConversation(c *chat.Conversation) *Conversation {
	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		UserID:   c.UserID,
		Topic:    c.Topic,
		Metadata: datatypes.JSONMap(c.Metadata),
	}
}

// EtoD converts the database schema to a domain conversation
func (c *Conversation) EtoD() *chat.Conversation {
	metadata := map[string]any(c.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &chat.Conversation{
		ID:        c.ID,
		UserID:    c.UserID,
		Topic:     c.Topic,
		Metadata:  metadata,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewSchemaMessage creates a database schema from a domain message
func NewSchemaMessage(m *chat.Message) *Message {
	return &Message{
		BaseModel: BaseModel{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ConversationID:  m.ConversationID,
		SenderType:      string(m.SenderType),
		TextContent:     m.TextContent,
		TokenCount:      m.TokenCount,
		ModelName:       m.ModelName,
		RawResponseData: datatypes.JSONMap(m.RawResponseData),
		FeedbackRating:  m.FeedbackRating,
		FeedbackNotes:   m.FeedbackNotes,
	}
}

// EtoD converts the database schema to a domain message
func (m *Message) EtoD() *chat.Message {
	raw := map[string]any(m.RawResponseData)
	if raw == nil {
		raw = map[string]any{}
	}
	return &chat.Message{
		ID:              m.ID,
		ConversationID:  m.ConversationID,
		SenderType:      chat.SenderType(m.SenderType),
		TextContent:     m.TextContent,
		TokenCount:      m.TokenCount,
		ModelName:       m.ModelName,
		RawResponseData: raw,
		FeedbackRating:  m.FeedbackRating,
		FeedbackNotes:   m.FeedbackNotes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
