package chatrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/alexislara/backend-chat-ia/internal/domain/chat"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/database/dbschema"
	"github.com/alexislara/backend-chat-ia/internal/infrastructure/database/transaction"
	"github.com/alexislara/backend-chat-ia/internal/utils/platformerrors"
)

// MessageRepository persists messages with gorm.
type MessageRepository struct {
	db *transaction.Database
}

func NewMessageRepository(db *transaction.Database) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *chat.Message) error {
	schemaMessage := dbschema.NewSchemaMessage(message)
	if err := r.db.GetTx(ctx).WithContext(ctx).Create(schemaMessage).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to insert message", err, "")
	}

	message.CreatedAt = schemaMessage.CreatedAt
	message.UpdatedAt = schemaMessage.UpdatedAt
	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id string) (*chat.Message, error) {
	var schemaMessage dbschema.Message
	err := r.db.GetTx(ctx).WithContext(ctx).First(&schemaMessage, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"message not found", err, "")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to query message", err, "")
	}

	return schemaMessage.EtoD(), nil
}

// List returns every message in creation order.
func (r *MessageRepository) List(ctx context.Context) ([]chat.Message, error) {
	return r.list(ctx, nil)
}

// ListByConversation returns the messages of one conversation in
// creation order, ties broken by identifier so transcript
// reconstruction is deterministic.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]chat.Message, error) {
	return r.list(ctx, &conversationID)
}

func (r *MessageRepository) list(ctx context.Context, conversationID *string) ([]chat.Message, error) {
	query := r.db.GetTx(ctx).WithContext(ctx).Order("created_at ASC, id ASC")
	if conversationID != nil {
		query = query.Where("conversation_id = ?", *conversationID)
	}

	var schemaMessages []dbschema.Message
	if err := query.Find(&schemaMessages).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list messages", err, "")
	}

	messages := make([]chat.Message, 0, len(schemaMessages))
	for i := range schemaMessages {
		messages = append(messages, *schemaMessages[i].EtoD())
	}
	return messages, nil
}

func (r *MessageRepository) Update(ctx context.Context, message *chat.Message) error {
	schemaMessage := dbschema.NewSchemaMessage(message)
	result := r.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Message{}).
		Where("id = ?", message.ID).
		Updates(map[string]any{
			"feedback_rating": schemaMessage.FeedbackRating,
			"feedback_notes":  schemaMessage.FeedbackNotes,
		})
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update message", result.Error, "")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"message not found", nil, "")
	}
	return nil
}
