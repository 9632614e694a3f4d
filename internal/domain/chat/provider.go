package chat

import "context"

// TranscriptPart is one text fragment of a transcript entry.
type TranscriptPart struct {
	Text string `json:"text"`
}

// TranscriptEntry is one role-tagged turn of the upstream transcript.
// Role is either "user" or "model".
type TranscriptEntry struct {
	Role  string           `json:"role"`
	Parts []TranscriptPart `json:"parts"`
}

// ProviderReply is the normalized result of a completion call.
type ProviderReply struct {
	Text       string
	TokenCount *int
	ModelName  string
	Raw        map[string]any
}

// CompletionProvider is the upstream chat completion capability. The
// provider has no session state: every call replays the full transcript.
type CompletionProvider interface {
	// Enabled reports whether the provider holds a usable credential.
	// When false, Send must not be called.
	Enabled() bool
	// Send submits the transcript and returns the model reply.
	Send(ctx context.Context, transcript []TranscriptEntry) (*ProviderReply, error)
}
