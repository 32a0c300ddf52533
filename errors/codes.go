package errors

// ErrorCode identifies an application error category in responses and logs.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004
	ErrorCode_FORBIDDEN        ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1006

	// Meetings
	ErrorCode_MEETING_NOT_FOUND     ErrorCode = 2000
	ErrorCode_MEETING_ALREADY_ENDED ErrorCode = 2001
	ErrorCode_EMPTY_AUDIO_CHUNK     ErrorCode = 2002

	// AI / analysis
	ErrorCode_AI_ANALYSIS_FAILED      ErrorCode = 3000
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 3001
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 3002

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 4000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 4001
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 4002

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 5000
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_ALREADY_ENDED:      "MEETING_ALREADY_ENDED",
	ErrorCode_EMPTY_AUDIO_CHUNK:          "EMPTY_AUDIO_CHUNK",
	ErrorCode_AI_ANALYSIS_FAILED:         "AI_ANALYSIS_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
}

// String returns the symbolic name for the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
