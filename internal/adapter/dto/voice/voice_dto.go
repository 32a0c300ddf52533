package voice

// EnrollSpeakerResponse represents the result of a voice enrollment
type EnrollSpeakerResponse struct {
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	SpeakerName   string  `json:"speaker_name"`
	AudioDuration float64 `json:"audio_duration"`
}

// EnrolledSpeakersResponse lists registered voice profiles
type EnrolledSpeakersResponse struct {
	Status       string   `json:"status"`
	SpeakerCount int      `json:"speaker_count"`
	Speakers     []string `json:"speakers"`
}

// RemoveSpeakerResponse represents the result of removing a voice profile
type RemoveSpeakerResponse struct {
	Status      string `json:"status"`
	SpeakerName string `json:"speaker_name"`
}
