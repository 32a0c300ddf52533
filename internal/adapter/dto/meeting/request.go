package meeting

// StartMeetingRequest represents the request to start a meeting
type StartMeetingRequest struct {
	MeetingName  string   `json:"meeting_name" validate:"required,notblank,max=500"`
	Participants []string `json:"participants,omitempty"`
}

// TextChunkRequest represents a directly submitted text chunk
type TextChunkRequest struct {
	Speaker string `json:"speaker" validate:"required,min=1,max=255"`
	Text    string `json:"text" validate:"required,min=1"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=active completed no_audio"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}
