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

// ConversationRepository persists conversations with gorm.
type ConversationRepository struct {
	db *transaction.Database
}

func NewConversationRepository(db *transaction.Database) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func (r *ConversationRepository) Create(ctx context.Context, conversation *chat.Conversation) error {
	schemaConversation := dbschema.NewSchemaConversation(conversation)
	if err := r.db.GetTx(ctx).WithContext(ctx).Create(schemaConversation).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to insert conversation", err, "")
	}

	conversation.CreatedAt = schemaConversation.CreatedAt
	conversation.UpdatedAt = schemaConversation.UpdatedAt
	return nil
}

func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*chat.Conversation, error) {
	var schemaConversation dbschema.Conversation
	err := r.db.GetTx(ctx).WithContext(ctx).First(&schemaConversation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"conversation not found", err, "")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to query conversation", err, "")
	}

	return schemaConversation.EtoD(), nil
}

// List returns every conversation, newest first.
func (r *ConversationRepository) List(ctx context.Context) ([]chat.Conversation, error) {
	var schemaConversations []dbschema.Conversation
	err := r.db.GetTx(ctx).WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&schemaConversations).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations", err, "")
	}

	conversations := make([]chat.Conversation, 0, len(schemaConversations))
	for i := range schemaConversations {
		conversations = append(conversations, *schemaConversations[i].EtoD())
	}
	return conversations, nil
}

func (r *ConversationRepository) Update(ctx context.Context, conversation *chat.Conversation) error {
	schemaConversation := dbschema.NewSchemaConversation(conversation)
	result := r.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", conversation.ID).
		Updates(map[string]any{
			"user_id":  schemaConversation.UserID,
			"topic":    schemaConversation.Topic,
			"metadata": schemaConversation.Metadata,
		})
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation", result.Error, "")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"conversation not found", nil, "")
	}
	return nil
}

// Delete removes a conversation and, through the schema constraint, its
// messages. Not exposed over HTTP; used by maintenance tooling.
func (r *ConversationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.GetTx(ctx).WithContext(ctx).Delete(&dbschema.Conversation{}, "id = ?", id)
	if result.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete conversation", result.Error, "")
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"conversation not found", nil, "")
	}
	return nil
}
