package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/alexislara/backend-chat-ia/internal/utils/platformerrors"
)

type mockConversationRepository struct {
	createFunc  func(ctx context.Context, conversation *Conversation) error
	getByIDFunc func(ctx context.Context, id string) (*Conversation, error)
	listFunc    func(ctx context.Context) ([]Conversation, error)
	updateFunc  func(ctx context.Context, conversation *Conversation) error
}

func (m *mockConversationRepository) Create(ctx context.Context, conversation *Conversation) error {
	return m.createFunc(ctx, conversation)
}

func (m *mockConversationRepository) GetByID(ctx context.Context, id string) (*Conversation, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockConversationRepository) List(ctx context.Context) ([]Conversation, error) {
	return m.listFunc(ctx)
}

func (m *mockConversationRepository) Update(ctx context.Context, conversation *Conversation) error {
	return m.updateFunc(ctx, conversation)
}

type mockMessageRepository struct {
	createFunc             func(ctx context.Context, message *Message) error
	getByIDFunc            func(ctx context.Context, id string) (*Message, error)
	listFunc               func(ctx context.Context) ([]Message, error)
	listByConversationFunc func(ctx context.Context, conversationID string) ([]Message, error)
	updateFunc             func(ctx context.Context, message *Message) error
}

func (m *mockMessageRepository) Create(ctx context.Context, message *Message) error {
	return m.createFunc(ctx, message)
}

func (m *mockMessageRepository) GetByID(ctx context.Context, id string) (*Message, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockMessageRepository) List(ctx context.Context) ([]Message, error) {
	return m.listFunc(ctx)
}

func (m *mockMessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]Message, error) {
	return m.listByConversationFunc(ctx, conversationID)
}

func (m *mockMessageRepository) Update(ctx context.Context, message *Message) error {
	return m.updateFunc(ctx, message)
}

// passthroughTx runs the scoped function directly, mirroring a
// transaction that commits on nil and rolls back on error.
type passthroughTx struct{}

func (passthroughTx) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockProvider struct {
	enabled  bool
	sendFunc func(ctx context.Context, transcript []TranscriptEntry) (*ProviderReply, error)
}

func (m *mockProvider) Enabled() bool {
	return m.enabled
}

func (m *mockProvider) Send(ctx context.Context, transcript []TranscriptEntry) (*ProviderReply, error) {
	return m.sendFunc(ctx, transcript)
}

func ptr[T any](v T) *T {
	return &v
}

func TestGenerateAIResponseMissingText(t *testing.T) {
	repoCalled := false
	service := NewService(
		&mockConversationRepository{
			createFunc: func(ctx context.Context, c *Conversation) error {
				repoCalled = true
				return nil
			},
		},
		&mockMessageRepository{
			createFunc: func(ctx context.Context, m *Message) error {
				repoCalled = true
				return nil
			},
		},
		passthroughTx{},
		&mockProvider{enabled: false},
	)

	_, err := service.GenerateAIResponse(context.Background(), GenerateTurnParams{Text: ""})
	if err == nil {
		t.Fatal("expected an error for empty text")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected platform error, got %T", err)
	}
	if platformErr.Message != "The 'text' field is required." {
		t.Errorf("unexpected message: %q", platformErr.Message)
	}
	if repoCalled {
		t.Error("no repository call expected for empty text")
	}
}

func TestGenerateAIResponseCreatesConversationForNewTurn(t *testing.T) {
	var createdConversation *Conversation
	var createdMessages []Message

	caller := "user-a"
	service := NewService(
		&mockConversationRepository{
			createFunc: func(ctx context.Context, c *Conversation) error {
				createdConversation = c
				return nil
			},
		},
		&mockMessageRepository{
			createFunc: func(ctx context.Context, m *Message) error {
				createdMessages = append(createdMessages, *m)
				return nil
			},
			listByConversationFunc: func(ctx context.Context, conversationID string) ([]Message, error) {
				return nil, nil
			},
		},
		passthroughTx{},
		&mockProvider{
			enabled: true,
			sendFunc: func(ctx context.Context, transcript []TranscriptEntry) (*ProviderReply, error) {
				return &ProviderReply{
					Text:       "React es una biblioteca de JavaScript.",
					TokenCount: ptr(70),
					ModelName:  "gemini-2.0-flash",
					Raw:        map[string]any{"candidates": []any{}},
				}, nil
			},
		},
	)

	result, err := service.GenerateAIResponse(context.Background(), GenerateTurnParams{
		Text:     "¿Qué es React?",
		CallerID: &caller,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if createdConversation == nil {
		t.Fatal("expected a conversation to be created")
	}
	if createdConversation.UserID == nil || *createdConversation.UserID != caller {
		t.Error("expected the caller to own the new conversation")
	}
	if result.ConversationID != createdConversation.ID {
		t.Errorf("result conversation id %q does not match created %q", result.ConversationID, createdConversation.ID)
	}

	if len(createdMessages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(createdMessages))
	}
	if createdMessages[0].SenderType != SenderTypeUser {
		t.Errorf("first write should be the user message, got %s", createdMessages[0].SenderType)
	}
	if createdMessages[1].SenderType != SenderTypeModel {
		t.Errorf("second write should be the model message, got %s", createdMessages[1].SenderType)
	}
	if createdMessages[0].ID >= createdMessages[1].ID {
		t.Error("user message id should sort before the model message id")
	}
	if createdMessages[1].TokenCount == nil || *createdMessages[1].TokenCount != 70 {
		t.Error("model message should carry the reported token count")
	}
	if result.Message.SenderType != SenderTypeModel {
		t.Errorf("result should be the model message, got %s", result.Message.SenderType)
	}
}

func TestGenerateAIResponseTranscriptForContinuation(t *testing.T) {
	conversationID := "conv-1"
	history := []Message{
		{ID: "m1", ConversationID: conversationID, SenderType: SenderTypeUser, TextContent: "¿Qué es React?"},
		{ID: "m2", ConversationID: conversationID, SenderType: SenderTypeModel, TextContent: "Una biblioteca."},
	}

	var sentTranscript []TranscriptEntry
	service := NewService(
		&mockConversationRepository{
			getByIDFunc: func(ctx context.Context, id string) (*Conversation, error) {
				return &Conversation{ID: conversationID}, nil
			},
		},
		&mockMessageRepository{
			createFunc: func(ctx context.Context, m *Message) error { return nil },
			listByConversationFunc: func(ctx context.Context, id string) ([]Message, error) {
				return history, nil
			},
		},
		passthroughTx{},
		&mockProvider{
			enabled: true,
			sendFunc: func(ctx context.Context, transcript []TranscriptEntry) (*ProviderReply, error) {
				sentTranscript = transcript
				return &ProviderReply{Text: "Next.js es un framework.", ModelName: "gemini-2.0-flash"}, nil
			},
		},
	)

	_, err := service.GenerateAIResponse(context.Background(), GenerateTurnParams{
		Text:           "¿Y Next.js?",
		ConversationID: &conversationID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sentTranscript) != 3 {
		t.Fatalf("expected transcript length 3, got %d", len(sentTranscript))
	}
	if sentTranscript[2].Role != "user" || sentTranscript[2].Parts[0].Text != "¿Y Next.js?" {
		t.Errorf("last entry should be the new prompt, got %+v", sentTranscript[2])
	}
}

func TestGenerateAIResponseOwnerMismatch(t *testing.T) {
	conversationID := "conv-1"
	owner := "user-a"
	caller := "user-b"

	messageWrites := 0
	service := NewService(
		&mockConversationRepository{
			getByIDFunc: func(ctx context.Context, id string) (*Conversation, error) {
				return &Conversation{ID: conversationID, UserID: &owner}, nil
			},
		},
		&mockMessageRepository{
			createFunc: func(ctx context.Context, m *Message) error {
				messageWrites++
				return nil
			},
		},
		passthroughTx{},
		&mockProvider{enabled: false},
	)

	_, err := service.GenerateAIResponse(context.Background(), GenerateTurnParams{
		Text:           "hi",
		ConversationID: &conversationID,
		CallerID:       &caller,
	})
	if err == nil {
		t.Fatal("expected an error for owner mismatch")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden) {
		t.Errorf("expected forbidden error, got %v", err)
	}
	if messageWrites != 0 {
		t.Errorf("expected no message writes, got %d", messageWrites)
	}
}

func TestGenerateAIResponseGuestContinuesOwnedConversation(t *testing.T) {
	conversationID := "conv-1"
	owner := "user-a"

	service := NewService(
		&mockConversationRepository{
			getByIDFunc: func(ctx context.Context, id string) (*Conversation, error) {
				return &Conversation{ID: conversationID, UserID: &owner}, nil
			},
		},
		&mockMessageRepository{
			createFunc: func(ctx context.Context, m *Message) error { return nil },
			listByConversationFunc: func(ctx context.Context, id string) ([]Message, error) {
				return nil, nil
			},
		},
		passthroughTx{},
		&mockProvider{enabled: false},
	)

	_, err := service.GenerateAIResponse(context.Background(), GenerateTurnParams{
		Text:           "hola",
		ConversationID: &conversationID,
	})
	if err != nil {
		t.Fatalf("guest continuation should pass, got %v", err)
	}
}

func TestGenerateAIResponseInvalidConversationID(t *testing.T) {
	conversationID := "missing"
	service := NewService(
		&mockConversationRepository{
			getByIDFunc: func(ctx context.Context, id string) (*Conversation, error) {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
					platformerrors.ErrorTypeNotFound, "conversation not found", nil, "")
			},
		},
		&mockMessageRepository{},
		passthroughTx{},
		&mockProvider{enabled: false},
	)

	_, err := service.GenerateAIResponse(context.Background(), GenerateTurnParams{
		Text:           "hola",
		ConversationID: &conversationID,
	})
	if err == nil {
		t.Fatal("expected an error for an unknown conversation id")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected platform error, got %T", err)
	}
	if platformErr.Message != "Invalid conversation ID or error: conversation not found" {
		t.Errorf("unexpected message: %q", platformErr.Message)
	}
}

func TestGenerateAIResponseProviderError(t *testing.T) {
	service := NewService(
		&mockConversationRepository{
			createFunc: func(ctx context.Context, c *Conversation) error { return nil },
		},
		&mockMessageRepository{
			createFunc: func(ctx context.Context, m *Message) error { return nil },
			listByConversationFunc: func(ctx context.Context, id string) ([]Message, error) {
				return nil, nil
			},
		},
		passthroughTx{},
		&mockProvider{
			enabled: true,
			sendFunc: func(ctx context.Context, transcript []TranscriptEntry) (*ProviderReply, error) {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
					platformerrors.ErrorTypeExternal, "gemini request failed: quota exceeded", nil, "")
			},
		},
	)

	_, err := service.GenerateAIResponse(context.Background(), GenerateTurnParams{Text: "hola"})
	if err == nil {
		t.Fatal("expected an error when the provider fails")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation) {
		t.Errorf("provider failures should surface as validation errors, got %v", err)
	}

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected platform error, got %T", err)
	}
	if platformErr.Message != "gemini request failed: quota exceeded" {
		t.Errorf("unexpected message: %q", platformErr.Message)
	}
}

func TestGenerateAIResponseDisabledProviderFallback(t *testing.T) {
	var createdMessages []Message

	service := NewService(
		&mockConversationRepository{
			createFunc: func(ctx context.Context, c *Conversation) error { return nil },
		},
		&mockMessageRepository{
			createFunc: func(ctx context.Context, m *Message) error {
				createdMessages = append(createdMessages, *m)
				return nil
			},
			listByConversationFunc: func(ctx context.Context, id string) ([]Message, error) {
				return nil, nil
			},
		},
		passthroughTx{},
		&mockProvider{
			enabled: false,
			sendFunc: func(ctx context.Context, transcript []TranscriptEntry) (*ProviderReply, error) {
				t.Fatal("Send must not be called on a disabled provider")
				return nil, nil
			},
		},
	)

	result, err := service.GenerateAIResponse(context.Background(), GenerateTurnParams{Text: "hola"})
	if err != nil {
		t.Fatalf("disabled provider turn should commit, got %v", err)
	}

	if len(createdMessages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(createdMessages))
	}
	model := result.Message
	if model.TextContent != "Lo siento, el servicio de IA no está disponible." {
		t.Errorf("unexpected fallback text: %q", model.TextContent)
	}
	if model.ModelName == nil || *model.ModelName != "N/A" {
		t.Error("fallback model name should be N/A")
	}
	if model.TokenCount != nil {
		t.Error("fallback token count should be nil")
	}
	if errVal, ok := model.RawResponseData["error"]; !ok || errVal != "AI model not initialized." {
		t.Errorf("unexpected raw payload: %v", model.RawResponseData)
	}
}
