package dto

import (
	"time"

	"paper-rag-be/pkg/store"
)

type SendChatRequest struct {
	// SessionId is optional; an empty value falls back to the shared
	// default session.
	SessionId string `json:"session_id"`
	Question  string `json:"question"`
}

type PassageDTO struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Score    float64           `json:"score"`
}

type SendChatResponse struct {
	SessionId         string           `json:"session_id"`
	Answer            string           `json:"answer"`
	RephrasedQuestion string           `json:"rephrased_question"`
	TopicLabel        store.TopicLabel `json:"topic_label"`
	Passages          []PassageDTO     `json:"passages"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type GetChatHistoryResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type GetAllSessionsResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
