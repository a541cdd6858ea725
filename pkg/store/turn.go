package store

// Passage is a retrieved excerpt of the active document plus its provenance
// metadata. Immutable once produced; surfaced verbatim to the caller.
type Passage struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Score    float64           `json:"score"`
}

// TopicLabel is the classifier verdict for a rewritten question.
type TopicLabel string

const (
	LabelUnset    TopicLabel = ""
	LabelOnTopic  TopicLabel = "on_topic"
	LabelOffTopic TopicLabel = "off_topic"
)

// Pipeline stages. Transitions are strictly linear except the single
// classifier-driven branch after StageClassified.
const (
	StageStart            = "START"
	StageRewritten        = "REWRITTEN"
	StageClassified       = "CLASSIFIED"
	StageRetrieved        = "RETRIEVED"
	StageAnswered         = "ANSWERED"
	StageOffTopicAnswered = "OFF_TOPIC_ANSWERED"
)

// TurnState is the working state of one conversational turn. The Messages
// log is append-only; every other field is transient and reset by BeginTurn
// before any pipeline stage runs, so nothing can leak from a previous turn.
type TurnState struct {
	SessionID string `json:"session_id"`

	// Chronological role-tagged log loaded from the session store,
	// including the current question once ingested.
	Messages []Message `json:"messages"`

	CurrentQuestion   string     `json:"current_question"`
	RephrasedQuestion string     `json:"rephrased_question"`
	TopicLabel        TopicLabel `json:"topic_label"`
	Passages          []Passage  `json:"passages"`
	Stage             string     `json:"stage"`
}

// Message is one entry of a session's message log.
type Message struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// BeginTurn resets all transient fields and records the incoming question.
func (s *TurnState) BeginTurn(question string) {
	s.CurrentQuestion = question
	s.RephrasedQuestion = ""
	s.TopicLabel = LabelUnset
	s.Passages = nil
	s.Stage = StageStart
}

// History returns the log excluding the just-ingested current question.
// This is the "prior conversation" handed to the rewriter and generator.
func (s *TurnState) History() []Message {
	if n := len(s.Messages); n > 0 {
		return s.Messages[:n-1]
	}
	return nil
}
