package model

// WebSocket message types
const (
	WSMessageTypeChunk    = "chunk"
	WSMessageTypeResult   = "result"
	WSMessageTypeProgress = "progress"
	WSMessageTypeComplete = "complete"
	WSMessageTypeError    = "error"
	WSMessageTypePing     = "ping"
	WSMessageTypePong     = "pong"
)

// WSMessage represents a generic WebSocket message
type WSMessage struct {
	Type string `json:"type"`
}

// WSChunkMessage carries one incremental text fragment of an LLM stream
type WSChunkMessage struct {
	Type     string `json:"type"`
	StreamID string `json:"streamId"`
	Text     string `json:"text"`
}

// WSResultMessage is the terminal success event of an LLM stream
type WSResultMessage struct {
	Type         string      `json:"type"`
	StreamID     string      `json:"streamId"`
	GenerationID string      `json:"generationId"`
	Data         interface{} `json:"data"`
}

// WSProgressMessage represents a video job progress update
type WSProgressMessage struct {
	Type   string    `json:"type"`
	JobID  string    `json:"jobId"`
	Status JobStatus `json:"status"`
	Step   string    `json:"step,omitempty"`
}

// WSCompleteMessage represents video job completion
type WSCompleteMessage struct {
	Type   string      `json:"type"`
	JobID  string      `json:"jobId"`
	Result interface{} `json:"result"`
}

// WSErrorMessage is the terminal error event of a stream or job
type WSErrorMessage struct {
	Type     string  `json:"type"`
	StreamID string  `json:"streamId,omitempty"`
	JobID    string  `json:"jobId,omitempty"`
	Error    WSError `json:"error"`
}

// WSError represents error details
type WSError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
