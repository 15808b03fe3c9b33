package llm

import "context"

// ChatModel is the port for chat-based LLMs used by profile import and
// cover-letter drafts.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
