package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexislara/backend-chat-ia/internal/utils/chatid"
	"github.com/alexislara/backend-chat-ia/internal/utils/platformerrors"
)

// Disabled provider fallback values. The turn still commits with these
// so the conversation records that the service was unavailable.
const (
	disabledReplyText      = "Lo siento, el servicio de IA no está disponible."
	disabledReplyModelName = "N/A"
)

// GenerateTurnParams is the input of one AI turn. CallerID is nil for
// guests; ConversationID is nil when the caller starts a new
// conversation.
type GenerateTurnParams struct {
	Text           string
	ConversationID *string
	CallerID       *string
}

// TurnResult is the committed model message plus the conversation the
// client must reference to continue the dialogue.
type TurnResult struct {
	Message        Message
	ConversationID string
}

// GenerateAIResponse runs one full AI turn: resolve or create the
// conversation, rebuild the transcript, call the provider, and persist
// both sides of the exchange. Everything runs inside a single
// transaction so a provider failure leaves no messages behind.
func (s *Service) GenerateAIResponse(ctx context.Context, params GenerateTurnParams) (*TurnResult, error) {
	if params.Text == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"The 'text' field is required.", nil, "")
	}

	var result *TurnResult

	err := s.tx.InTransaction(ctx, func(txCtx context.Context) error {
		conversation, err := s.resolveTurnConversation(txCtx, params)
		if err != nil {
			return err
		}

		history, err := s.messages.ListByConversation(txCtx, conversation.ID)
		if err != nil {
			return platformerrors.AsError(txCtx, platformerrors.LayerDomain, err, "failed to load conversation history")
		}

		transcript := BuildTranscript(history, params.Text)

		userMessage := &Message{
			ID:              chatid.New(),
			ConversationID:  conversation.ID,
			SenderType:      SenderTypeUser,
			TextContent:     params.Text,
			RawResponseData: map[string]any{},
		}
		if err := s.messages.Create(txCtx, userMessage); err != nil {
			return platformerrors.AsError(txCtx, platformerrors.LayerDomain, err, "failed to persist user message")
		}

		reply, err := s.obtainReply(txCtx, transcript)
		if err != nil {
			return err
		}

		modelName := reply.ModelName
		modelMessage := &Message{
			ID:              chatid.New(),
			ConversationID:  conversation.ID,
			SenderType:      SenderTypeModel,
			TextContent:     reply.Text,
			TokenCount:      reply.TokenCount,
			ModelName:       &modelName,
			RawResponseData: reply.Raw,
		}
		if err := s.messages.Create(txCtx, modelMessage); err != nil {
			return platformerrors.AsError(txCtx, platformerrors.LayerDomain, err, "failed to persist model message")
		}

		result = &TurnResult{
			Message:        *modelMessage,
			ConversationID: conversation.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// resolveTurnConversation finds the referenced conversation or creates
// a fresh one owned by the caller. A conversation owned by a different
// user is rejected; a nil owner on either side passes, which keeps
// guest continuation working.
func (s *Service) resolveTurnConversation(ctx context.Context, params GenerateTurnParams) (*Conversation, error) {
	if params.ConversationID == nil || *params.ConversationID == "" {
		conversation := &Conversation{
			ID:       chatid.New(),
			UserID:   params.CallerID,
			Metadata: map[string]any{},
		}
		if err := s.conversations.Create(ctx, conversation); err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
		}
		return conversation, nil
	}

	conversation, err := s.conversations.GetByID(ctx, *params.ConversationID)
	if err != nil {
		reason := err.Error()
		var platformErr *platformerrors.PlatformError
		if errors.As(err, &platformErr) {
			reason = platformErr.Message
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("Invalid conversation ID or error: %s", reason), err, "")
	}

	if params.CallerID != nil && conversation.UserID != nil && *conversation.UserID != *params.CallerID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"Conversation does not belong to the current user.", nil, "")
	}

	return conversation, nil
}

// obtainReply calls the provider, or synthesizes the fallback reply
// when no credential is configured. Provider failures surface as
// validation errors carrying the upstream error text.
func (s *Service) obtainReply(ctx context.Context, transcript []TranscriptEntry) (*ProviderReply, error) {
	if !s.provider.Enabled() {
		return &ProviderReply{
			Text:      disabledReplyText,
			ModelName: disabledReplyModelName,
			Raw:       map[string]any{"error": "AI model not initialized."},
		}, nil
	}

	reply, err := s.provider.Send(ctx, transcript)
	if err != nil {
		detail := err.Error()
		var platformErr *platformerrors.PlatformError
		if errors.As(err, &platformErr) {
			detail = platformErr.Message
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			detail, err, "")
	}

	if reply.Raw == nil {
		reply.Raw = map[string]any{}
	}

	return reply, nil
}
