package generator

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"paper-rag-be/pkg/llm"
	"paper-rag-be/pkg/store"
)

type fakeProvider struct {
	reply  string
	prompt string
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.reply, nil
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompt = prompt
	return f.reply, nil
}

func (f *fakeProvider) GenerateChoice(ctx context.Context, prompt string, choices []string, options ...llm.Option) (string, error) {
	return f.reply, nil
}

func TestFormatPassages(t *testing.T) {
	passages := []store.Passage{
		{Content: "attention weighs tokens", Metadata: map[string]string{"Header 1": "Method", "Header 2": "Attention"}},
		{Content: "no metadata here"},
	}

	got := FormatPassages(passages)

	if !strings.Contains(got, "[1] (Method > Attention) attention weighs tokens") {
		t.Errorf("first passage not rendered with section path:\n%s", got)
	}
	if !strings.Contains(got, "[2] no metadata here") {
		t.Errorf("second passage rendered wrong:\n%s", got)
	}
}

func TestFormatPassagesEmpty(t *testing.T) {
	if got := FormatPassages(nil); got != "(no excerpts retrieved)" {
		t.Errorf("FormatPassages(nil) = %q", got)
	}
}

func TestGenerateBuildsGroundedPrompt(t *testing.T) {
	provider := &fakeProvider{reply: "  The paper proposes multi-head attention.  "}
	g := NewGenerator(provider, log.New(io.Discard, "", 0))

	history := []store.Message{{Role: "user", Content: "earlier question"}}
	passages := []store.Passage{{Content: "multi-head attention"}}

	answer, err := g.Generate(context.Background(), history, passages, "What does the paper propose?")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if answer != "The paper proposes multi-head attention." {
		t.Errorf("answer = %q, want trimmed reply", answer)
	}
	for _, fragment := range []string{"multi-head attention", "earlier question", "What does the paper propose?"} {
		if !strings.Contains(provider.prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}
