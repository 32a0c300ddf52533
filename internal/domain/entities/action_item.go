package entities

// ActionItem represents a concrete task extracted from a meeting
type ActionItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Owner       string `json:"owner,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    string `json:"priority"`
}

// ActionItem priority constants
const (
	ActionItemPriorityLow    = "low"
	ActionItemPriorityMedium = "medium"
	ActionItemPriorityHigh   = "high"
)
