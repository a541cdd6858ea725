package generator

import (
	"context"
	"fmt"
	"log"
	"strings"

	"paper-rag-be/internal/constant"
	"paper-rag-be/pkg/llm"
	"paper-rag-be/pkg/rag/rewriter"
	"paper-rag-be/pkg/store"
)

// Generator produces the grounded answer from the retrieved passages and
// the conversation so far.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (g *Generator) Generate(ctx context.Context, history []store.Message, passages []store.Passage, question string) (string, error) {
	prompt := fmt.Sprintf(constant.AnswerPromptV1,
		rewriter.FormatHistory(history),
		FormatPassages(passages),
		question,
	)

	answer, err := g.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	g.logger.Printf("[GENERATOR] Answer length: %d chars, passages: %d", len(answer), len(passages))
	return strings.TrimSpace(answer), nil
}

// FormatPassages renders the retrieved excerpts as a numbered context block,
// prefixing each with its section path when the chunker captured one.
func FormatPassages(passages []store.Passage) string {
	if len(passages) == 0 {
		return "(no excerpts retrieved)"
	}
	var b strings.Builder
	for i, p := range passages {
		fmt.Fprintf(&b, "[%d]", i+1)
		if section := sectionPath(p.Metadata); section != "" {
			fmt.Fprintf(&b, " (%s)", section)
		}
		b.WriteString(" ")
		b.WriteString(p.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func sectionPath(metadata map[string]string) string {
	var parts []string
	if h, ok := metadata["Header 1"]; ok && h != "" {
		parts = append(parts, h)
	}
	if h, ok := metadata["Header 2"]; ok && h != "" {
		parts = append(parts, h)
	}
	return strings.Join(parts, " > ")
}
