package rewriter

import (
	"context"
	"fmt"
	"log"
	"strings"

	"paper-rag-be/internal/constant"
	"paper-rag-be/pkg/llm"
	"paper-rag-be/pkg/store"
)

// Rewriter turns a context-dependent follow-up question into a standalone
// retrieval query using the prior conversation.
type Rewriter struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewRewriter(llmProvider llm.LLMProvider, logger *log.Logger) *Rewriter {
	return &Rewriter{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Rewrite produces a self-contained question. An empty model reply falls
// back to the original question so a flaky rewrite never blanks the turn.
func (r *Rewriter) Rewrite(ctx context.Context, history []store.Message, question string) (string, error) {
	prompt := fmt.Sprintf(constant.RewritePromptV1, FormatHistory(history), question)

	response, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return "", fmt.Errorf("rewrite question: %w", err)
	}

	rewritten := strings.TrimSpace(response)
	if rewritten == "" {
		r.logger.Printf("[REWRITER] Empty rewrite, falling back to the original question")
		return question, nil
	}

	r.logger.Printf("[REWRITER] Rephrased question: %s", rewritten)
	return rewritten, nil
}

// FormatHistory renders the message log the way the prompts expect it.
func FormatHistory(history []store.Message) string {
	if len(history) == 0 {
		return "(no prior conversation)"
	}
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
