package chat

// Request is the inbound payload for one chat turn. SessionID is optional:
// an empty or unknown value makes the server mint a fresh session.
type Request struct {
	SessionID              string `json:"sessionId,omitempty"`
	Message                string `json:"message"`
	Model                  string `json:"model,omitempty"`
	SystemPromptIdentifier string `json:"systemPromptIdentifier,omitempty"`
}

// Response carries the assistant reply plus enough session bookkeeping for
// the client to continue the conversation.
type Response struct {
	SessionID    string `json:"sessionId"`
	Message      string `json:"message"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	MessageCount int    `json:"messageCount"`
}
