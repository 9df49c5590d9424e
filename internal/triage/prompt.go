package triage

// systemPrompt is the fixed instruction sent with every upstream call.
// The five rules and the exact key list are part of the contract the
// normalizer validates against; change them together or not at all.
const systemPrompt = `
You are a clinical triage assistant.
Rules:
- Only assess symptom urgency (Low, Medium, High)
- Recommend a medical department
- Do NOT diagnose diseases
- Do NOT give treatment or medication advice
- Always include a medical disclaimer
Respond ONLY in JSON with keys:
urgency, department, explanation, medical_attention, disclaimer
`

// BuildRequest shapes the outbound model request for a triage message.
// The user message is forwarded verbatim: no truncation, no scrubbing.
// Content filtering is the Gate's job, not the builder's.
func BuildRequest(message string) *ChatRequest {
	return &ChatRequest{
		System:    systemPrompt,
		User:      message,
		MaxTokens: ResponseTokens,
	}
}
