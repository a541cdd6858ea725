package store

import "testing"

func TestBeginTurnResetsTransients(t *testing.T) {
	s := &TurnState{
		SessionID:         "s1",
		Messages:          []Message{{Role: "user", Content: "old"}},
		CurrentQuestion:   "old",
		RephrasedQuestion: "old standalone",
		TopicLabel:        LabelOnTopic,
		Passages:          []Passage{{Content: "stale"}},
		Stage:             StageAnswered,
	}

	s.BeginTurn("new question")

	if s.CurrentQuestion != "new question" {
		t.Errorf("CurrentQuestion = %q", s.CurrentQuestion)
	}
	if s.RephrasedQuestion != "" || s.TopicLabel != LabelUnset || s.Passages != nil {
		t.Errorf("transient fields survived BeginTurn: %+v", s)
	}
	if s.Stage != StageStart {
		t.Errorf("Stage = %q, want %q", s.Stage, StageStart)
	}
	// The message log is durable state and must survive.
	if len(s.Messages) != 1 {
		t.Errorf("Messages reset by BeginTurn")
	}
}

func TestHistoryExcludesCurrentQuestion(t *testing.T) {
	s := &TurnState{Messages: []Message{
		{Role: "user", Content: "q1"},
		{Role: "assistant", Content: "a1"},
		{Role: "user", Content: "q2"},
	}}

	history := s.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[1].Content != "a1" {
		t.Errorf("history tail = %q, want the last completed exchange", history[1].Content)
	}
}

func TestHistoryEmptyLog(t *testing.T) {
	s := &TurnState{}
	if got := s.History(); got != nil {
		t.Errorf("History() on empty log = %v, want nil", got)
	}
}
