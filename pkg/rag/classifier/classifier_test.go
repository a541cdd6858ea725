package classifier

import (
	"context"
	"io"
	"log"
	"testing"

	"paper-rag-be/pkg/llm"
	"paper-rag-be/pkg/store"
)

type fakeProvider struct {
	choice string
	prompt string
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.choice, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.choice, nil
}

func (f *fakeProvider) GenerateChoice(ctx context.Context, prompt string, choices []string, options ...llm.Option) (string, error) {
	f.prompt = prompt
	return f.choice, nil
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want store.TopicLabel
	}{
		{"plain yes", "yes", store.LabelOnTopic},
		{"plain no", "no", store.LabelOffTopic},
		{"uppercase", "YES", store.LabelOnTopic},
		{"padded", "  no \n", store.LabelOffTopic},
		{"label form", "on_topic", store.LabelOnTopic},
		{"label form negative", "off_topic", store.LabelOffTopic},
		{"hyphenated", "on-topic", store.LabelOnTopic},
		{"garbage routes off-topic", "maybe, it depends", store.LabelOffTopic},
		{"empty routes off-topic", "", store.LabelOffTopic},
		{"verbose reply routes off-topic", "Yes, because the question mentions the paper.", store.LabelOffTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLabel(tt.raw); got != tt.want {
				t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestClassifyNormalizesProviderOutput(t *testing.T) {
	provider := &fakeProvider{choice: "Yes"}
	c := NewClassifier(provider, log.New(io.Discard, "", 0))

	label, err := c.Classify(context.Background(), "What method does the paper use?")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if label != store.LabelOnTopic {
		t.Errorf("label = %q, want on_topic", label)
	}
	if provider.prompt == "" {
		t.Errorf("provider never received a prompt")
	}
}
