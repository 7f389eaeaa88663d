package assistant

import "context"

// Provider generates the assistant reply for a conversation. The full
// message history is replayed on every call; providers hold no state
// between requests.
type Provider interface {
	Complete(ctx context.Context, history []Message) (string, error)
}
