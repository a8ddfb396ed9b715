package dto

type ChatRequest struct {
	SessionId string `json:"session_id"` // Empty or unknown ids start a fresh session
	Query     string `json:"query" validate:"required"`
}

type ChatResponse struct {
	SessionId  string  `json:"session_id"`
	Reply      string  `json:"reply"`
	Route      string  `json:"route"` // "social" | "followup" | "rule" | "rag" | "rule-retry" | "fallback"
	Complexity float64 `json:"complexity"`
}

type DeleteSessionResponse struct {
	SessionId string `json:"session_id"`
}
