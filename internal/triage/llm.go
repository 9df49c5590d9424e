package triage

import "context"

// ResponseTokens caps the size of a single model response. Assessments
// are a few sentences of JSON; anything larger is the model rambling.
const ResponseTokens = 1024

// Provider is the interface for any LLM backend. Implementations must
// honor ctx cancellation and return an error for transport failures and
// non-success upstream statuses alike; they never inspect or repair the
// assessment text, which is the normalizer's job.
type Provider interface {
	Send(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// ChatRequest is a two-part chat payload: a fixed system instruction
// and the user's raw triage message.
type ChatRequest struct {
	System    string
	User      string
	MaxTokens int
}

// ChatResponse carries the model's raw text output plus accounting
// metadata. Content is untrusted text until the normalizer accepts it.
type ChatResponse struct {
	Content string
	Model   string
	Usage   Usage
}

// Usage is the token accounting reported by the upstream service.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
