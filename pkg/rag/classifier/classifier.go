package classifier

import (
	"context"
	"fmt"
	"log"
	"strings"

	"paper-rag-be/internal/constant"
	"paper-rag-be/pkg/llm"
	"paper-rag-be/pkg/store"
)

// Classifier decides whether a rephrased question is about the uploaded
// document. It constrains the model to a closed label set so the router
// never sees free-form text.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (c *Classifier) Classify(ctx context.Context, question string) (store.TopicLabel, error) {
	prompt := fmt.Sprintf(constant.ClassifyPromptV1, question)

	choice, err := c.llmProvider.GenerateChoice(ctx, prompt, []string{"yes", "no"}, llm.WithTemperature(0.0))
	if err != nil {
		return store.LabelUnset, fmt.Errorf("classify question: %w", err)
	}

	label := NormalizeLabel(choice)
	c.logger.Printf("[CLASSIFIER] Raw: %q, label: %s", choice, label)
	return label, nil
}

// NormalizeLabel maps a raw classifier reply onto a topic label. Anything
// unrecognized routes off-topic so a misbehaving model can only refuse,
// never hallucinate an answer.
func NormalizeLabel(raw string) store.TopicLabel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "on_topic", "on-topic":
		return store.LabelOnTopic
	case "no", "off_topic", "off-topic":
		return store.LabelOffTopic
	default:
		return store.LabelOffTopic
	}
}
