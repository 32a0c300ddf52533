package entities

// Decision represents an explicit decision extracted from a meeting
type Decision struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Owner       string `json:"owner,omitempty"`
	Status      string `json:"status"`
}

// Decision status constants
const (
	DecisionStatusDecided  = "decided"
	DecisionStatusPending  = "pending"
	DecisionStatusRejected = "rejected"
)

// SentimentResult is the per-statement sentiment classification
type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Score      float64 `json:"score"`
}

// SpeakerSentiment aggregates sentiment statistics for one speaker.
// OverallScore is the arithmetic mean of all per-statement scores.
type SpeakerSentiment struct {
	OverallScore    float64        `json:"overall_score"`
	StatementCount  int            `json:"statement_count"`
	PositiveCount   int            `json:"positive_count"`
	NegativeCount   int            `json:"negative_count"`
	NeutralCount    int            `json:"neutral_count"`
	DominantEmotion string         `json:"dominant_emotion"`
	Emotions        map[string]int `json:"emotions"`
}

// MeetingAnalysis is the complete derived analysis of a meeting,
// cached per meeting keyed by chunk count.
type MeetingAnalysis struct {
	MeetingID          string                       `json:"meeting_id"`
	ChunkCount         int                          `json:"chunk_count"`
	Summary            string                       `json:"summary"`
	KeyPoints          []string                     `json:"key_points"`
	Decisions          []Decision                   `json:"decisions"`
	ActionItems        []ActionItem                 `json:"action_items"`
	SentimentBreakdown map[string]*SpeakerSentiment `json:"sentiment_breakdown"`
	Speakers           []string                     `json:"speakers"`
}
