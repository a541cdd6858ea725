package rewriter

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

func TestFormatHistory(t *testing.T) {
	if got := FormatHistory(nil); got != "(no prior conversation)" {
		t.Errorf("empty history = %q", got)
	}

	got := FormatHistory([]store.Message{
		{Role: "user", Content: "What is attention?"},
		{Role: "assistant", Content: "A weighting mechanism."},
	})
	want := "user: What is attention?\nassistant: A weighting mechanism."
	if got != want {
		t.Errorf("FormatHistory = %q, want %q", got, want)
	}
}

func TestRewriteTrimsReply(t *testing.T) {
	provider := &fakeProvider{reply: "  What does the paper say about attention?  \n"}
	r := NewRewriter(provider, log.New(io.Discard, "", 0))

	got, err := r.Rewrite(context.Background(), []store.Message{{Role: "user", Content: "hi"}}, "what about it?")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != "What does the paper say about attention?" {
		t.Errorf("Rewrite = %q", got)
	}
	if !strings.Contains(provider.prompt, "what about it?") {
		t.Errorf("prompt missing the current question")
	}
	if !strings.Contains(provider.prompt, "user: hi") {
		t.Errorf("prompt missing the history")
	}
}

func TestRewriteEmptyReplyFallsBack(t *testing.T) {
	provider := &fakeProvider{reply: "   "}
	r := NewRewriter(provider, log.New(io.Discard, "", 0))

	got, err := r.Rewrite(context.Background(), nil, "original question")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != "original question" {
		t.Errorf("Rewrite = %q, want fallback to the original question", got)
	}
}
