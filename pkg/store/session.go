package store

import "time"

// Document is one retrieved chunk from the vector store.
type Document struct {
	ID         string                 `json:"id"`
	CustomerID string                 `json:"customer_id"`
	Text       string                 `json:"text"`
	Distance   float64                `json:"distance"` // cosine distance, lower is closer
	Metadata   map[string]interface{} `json:"metadata"`
}

// ResultItem is one entry of the last ranked list shown to the user.
// Ranks are 1-based and dense within a single list.
type ResultItem struct {
	Rank       int    `json:"rank"`
	CustomerID string `json:"id"`
	Company    string `json:"company"`
	Insight    string `json:"insight"`
}

// Session is the conversational state for one chat session. The only field
// the engine mutates is LastList; it is overwritten by list-producing
// intents and cleared by the segment intent. Lifecycle is owned by the
// caller (one Session per conversation, never shared across sessions).
type Session struct {
	ID        string       `json:"id"`
	LastList  []ResultItem `json:"last_list"`
	LastQuery string       `json:"last_query"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewSession returns an empty session with the given id.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, CreatedAt: now, UpdatedAt: now}
}

// SetLastList replaces the reference list for follow-up queries.
func (s *Session) SetLastList(items []ResultItem) {
	s.LastList = items
	s.UpdatedAt = time.Now()
}

// ClearLastList drops the reference list.
func (s *Session) ClearLastList() {
	s.LastList = nil
	s.UpdatedAt = time.Now()
}
