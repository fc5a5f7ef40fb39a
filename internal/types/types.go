package types

// AgentRequest is the body of POST /agent/run. ContextData is optional
// front-end state (previous answers, widget metadata); absent means empty.
type AgentRequest struct {
	UserInput   string `json:"user_input"`
	ContextData string `json:"context_data,omitempty"`
}

// AgentResponse always travels on HTTP 200; Status distinguishes a normal
// reply from a degraded one so low-code callers never parse error bodies.
type AgentResponse struct {
	Output string `json:"output"`
	Status string `json:"status"`
}

// ErrorResponse is used only for boundary failures: auth and validation.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
