package query

// ChunkRef is a transcript chunk referenced from a query answer
type ChunkRef struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Timestamp int    `json:"timestamp"`
	Sentiment string `json:"sentiment,omitempty"`
}

// TopicQueryResponse represents the chunks matching a topic
type TopicQueryResponse struct {
	MeetingID    string     `json:"meeting_id"`
	Topic        string     `json:"topic"`
	ResultsCount int        `json:"results_count"`
	Results      []ChunkRef `json:"results"`
}

// SemanticQueryResponse represents a natural-language query answer
type SemanticQueryResponse struct {
	MeetingID      string     `json:"meeting_id"`
	Query          string     `json:"query"`
	Answer         string     `json:"answer"`
	RelevantChunks []ChunkRef `json:"relevant_chunks"`
	ChunkCount     int        `json:"chunk_count"`
}

// AskMeetingResponse represents a free-form question answer
type AskMeetingResponse struct {
	MeetingID string `json:"meeting_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Status    string `json:"status"`
}

// SpeakerEntry summarizes one speaker's activity
type SpeakerEntry struct {
	Name               string         `json:"name"`
	Contributions      int            `json:"contributions"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
}

// SpeakersResponse lists speakers detected in a meeting
type SpeakersResponse struct {
	MeetingID    string         `json:"meeting_id"`
	SpeakerCount int            `json:"speaker_count"`
	Speakers     []SpeakerEntry `json:"speakers"`
}
