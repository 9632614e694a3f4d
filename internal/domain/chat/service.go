package chat

import (
	"context"
	"fmt"

	"github.com/alexislara/backend-chat-ia/internal/utils/chatid"
	"github.com/alexislara/backend-chat-ia/internal/utils/platformerrors"
)

const maxTopicLength = 255

// Service implements the conversation and message operations on top of
// the repository boundary.
type Service struct {
	conversations ConversationRepository
	messages      MessageRepository
	tx            TransactionManager
	provider      CompletionProvider
}

// NewService wires the chat service with its collaborators.
func NewService(
	conversations ConversationRepository,
	messages MessageRepository,
	tx TransactionManager,
	provider CompletionProvider,
) *Service {
	return &Service{
		conversations: conversations,
		messages:      messages,
		tx:            tx,
		provider:      provider,
	}
}

// ListConversations returns all conversations, newest first.
func (s *Service) ListConversations(ctx context.Context) ([]Conversation, error) {
	conversations, err := s.conversations.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list conversations")
	}
	return conversations, nil
}

// CreateConversation creates a conversation owned by the caller.
func (s *Service) CreateConversation(ctx context.Context, params CreateConversationParams) (*Conversation, error) {
	if params.Topic != nil && len(*params.Topic) > maxTopicLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("topic must be at most %d characters", maxTopicLength), nil, "")
	}

	metadata := params.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	conversation := &Conversation{
		ID:       chatid.New(),
		UserID:   params.UserID,
		Topic:    params.Topic,
		Metadata: metadata,
	}

	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}

	return conversation, nil
}

// GetConversation returns one conversation by id.
func (s *Service) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	conversation, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get conversation")
	}
	return conversation, nil
}

// UpdateConversation applies the mutable fields to a conversation.
func (s *Service) UpdateConversation(ctx context.Context, id string, params UpdateConversationParams) (*Conversation, error) {
	if params.Topic != nil && len(*params.Topic) > maxTopicLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("topic must be at most %d characters", maxTopicLength), nil, "")
	}

	conversation, err := s.conversations.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get conversation")
	}

	if params.Topic != nil {
		conversation.Topic = params.Topic
	}
	if params.Metadata != nil {
		conversation.Metadata = params.Metadata
	}

	if err := s.conversations.Update(ctx, conversation); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update conversation")
	}

	return conversation, nil
}

// ListMessages returns all messages across conversations.
func (s *Service) ListMessages(ctx context.Context) ([]Message, error) {
	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to list messages")
	}
	return messages, nil
}

// GetMessage returns one message by id.
func (s *Service) GetMessage(ctx context.Context, id string) (*Message, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get message")
	}
	return message, nil
}

// CreateMessage creates a message directly, bypassing the turn flow.
func (s *Service) CreateMessage(ctx context.Context, params CreateMessageParams) (*Message, error) {
	if params.TextContent == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"text_content is required", nil, "")
	}
	if !params.SenderType.IsValid() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("sender_type must be one of [%s, %s]", SenderTypeUser, SenderTypeModel), nil, "")
	}

	if _, err := s.conversations.GetByID(ctx, params.ConversationID); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to resolve conversation")
	}

	raw := params.RawResponseData
	if raw == nil {
		raw = map[string]any{}
	}

	message := &Message{
		ID:              chatid.New(),
		ConversationID:  params.ConversationID,
		SenderType:      params.SenderType,
		TextContent:     params.TextContent,
		TokenCount:      params.TokenCount,
		ModelName:       params.ModelName,
		RawResponseData: raw,
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create message")
	}

	return message, nil
}

// UpdateMessageFeedback records a rating and optional notes on a message.
func (s *Service) UpdateMessageFeedback(ctx context.Context, id string, params UpdateMessageFeedbackParams) (*Message, error) {
	if params.FeedbackRating != nil &&
		*params.FeedbackRating != FeedbackRatingBad && *params.FeedbackRating != FeedbackRatingGood {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"feedback_rating must be 0 (bad) or 1 (good)", nil, "")
	}

	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to get message")
	}

	if params.FeedbackRating != nil {
		message.FeedbackRating = params.FeedbackRating
	}
	if params.FeedbackNotes != nil {
		message.FeedbackNotes = params.FeedbackNotes
	}

	if err := s.messages.Update(ctx, message); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to update message")
	}

	return message, nil
}
