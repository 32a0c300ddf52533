package entities

// TranscriptArtifact is the derived transcript representation built from a
// meeting's chunks. Valid only while ChunkCount matches the live chunk count
// for the meeting; a mismatch forces a rebuild. Replaced wholesale, never
// mutated in place.
type TranscriptArtifact struct {
	MeetingID      string   `json:"meeting_id"`
	ChunkCount     int      `json:"chunk_count"`
	Speakers       []string `json:"speakers"`
	TranscriptText string   `json:"transcript_text"`
	ContextMessage string   `json:"context_message"`
}
