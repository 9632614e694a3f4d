package chat

import "context"

// ConversationRepository is the persistence boundary for conversations.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *Conversation) error
	GetByID(ctx context.Context, id string) (*Conversation, error)
	List(ctx context.Context) ([]Conversation, error)
	Update(ctx context.Context, conversation *Conversation) error
}

// MessageRepository is the persistence boundary for messages. List
// results are in creation order, ties broken by identifier.
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context) ([]Message, error)
	ListByConversation(ctx context.Context, conversationID string) ([]Message, error)
	Update(ctx context.Context, message *Message) error
}

// TransactionManager scopes a function to a single database transaction.
// Repository calls made with the derived context join that transaction;
// a returned error rolls everything back.
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
