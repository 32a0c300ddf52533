package query

// SemanticQueryRequest represents a natural-language query over a meeting
type SemanticQueryRequest struct {
	Query string `json:"query"`
}

// AskMeetingRequest represents a free-form question about a meeting
type AskMeetingRequest struct {
	Question string `json:"question"`
}
