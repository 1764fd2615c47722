package ai

import "context"

// Message represents a chat message
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// AIProvider defines the interface for AI backends
type AIProvider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	ChatStream(ctx context.Context, messages []Message) (<-chan string, error)
}

// Collect drains a stream into a single string.
func Collect(ctx context.Context, stream <-chan string) (string, error) {
	var out []byte
	for {
		select {
		case chunk, ok := <-stream:
			if !ok {
				return string(out), nil
			}
			out = append(out, chunk...)
		case <-ctx.Done():
			return string(out), ctx.Err()
		}
	}
}
