package dto

type HealthResponse struct {
	Status         string `json:"status"`
	DocumentLoaded bool   `json:"document_loaded"`
	Filename       string `json:"filename,omitempty"`
	ChunkCount     int    `json:"chunk_count,omitempty"`
	SessionCount   int64  `json:"session_count"`
}

type ClearAllResponse struct {
	DeletedSessions int64 `json:"deleted_sessions"`
}
