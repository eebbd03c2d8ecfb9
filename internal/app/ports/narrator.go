package ports

import "context"

type NarrationRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Narrator is the external narrative-generation collaborator. Generate
// returns the raw model text; parsing and fallback live with the caller.
// Implementations honor ctx cancellation and deadlines.
type Narrator interface {
	Generate(ctx context.Context, req NarrationRequest) (string, error)
}
