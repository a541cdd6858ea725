package executor

import (
	"context"
	"log"
	"strings"

	"paper-rag-be/internal/constant"
	"paper-rag-be/internal/entity"
	"paper-rag-be/pkg/store"
)

const sessionTitleMaxLen = 80

// TurnResult is what a completed turn hands back to the caller.
type TurnResult struct {
	Answer   string
	Passages []store.Passage
	State    *store.TurnState
}

// PipelineExecutor drives one conversational turn through the fixed
// stage sequence: ingest, rewrite, classify, then either retrieve and
// generate or refuse. Nothing is persisted until the turn has fully
// succeeded; a failure at any stage leaves the session log untouched.
type PipelineExecutor struct {
	rewriter   Rewriter
	classifier Classifier
	retriever  Retriever
	generator  Generator
	turnStore  TurnStore
	turnCache  TurnCacher
	locks      *sessionLocks
	logger     *log.Logger
}

func NewPipelineExecutor(
	rewriter Rewriter,
	classifier Classifier,
	retriever Retriever,
	generator Generator,
	turnStore TurnStore,
	turnCache TurnCacher,
	logger *log.Logger,
) *PipelineExecutor {
	return &PipelineExecutor{
		rewriter:   rewriter,
		classifier: classifier,
		retriever:  retriever,
		generator:  generator,
		turnStore:  turnStore,
		turnCache:  turnCache,
		locks:      newSessionLocks(),
		logger:     logger,
	}
}

// ProcessTurn runs one question through the pipeline for the given session.
// Turns of the same session are serialized; turns of different sessions
// proceed concurrently.
func (p *PipelineExecutor) ProcessTurn(ctx context.Context, sessionID string, question string) (*TurnResult, error) {
	unlock := p.locks.acquire(sessionID)
	defer unlock()

	doc, err := p.turnStore.ActiveDocument(ctx)
	if err != nil {
		return nil, collaboratorError("load active document", err)
	}
	if doc == nil {
		return nil, ErrNoDocument
	}

	persisted, err := p.turnStore.LoadMessages(ctx, sessionID)
	if err != nil {
		return nil, collaboratorError("load session log", err)
	}

	state := &store.TurnState{SessionID: sessionID}
	for _, m := range persisted {
		state.Messages = append(state.Messages, store.Message{Role: m.Role, Content: m.Content})
	}
	state.BeginTurn(question)

	// A resubmitted question (identical to the log's tail) is answered
	// again but not appended a second time.
	appendUser := true
	if n := len(state.Messages); n > 0 {
		last := state.Messages[n-1]
		if last.Role == constant.ChatMessageRoleUser && last.Content == question {
			appendUser = false
		}
	}
	if appendUser {
		state.Messages = append(state.Messages, store.Message{
			Role:    constant.ChatMessageRoleUser,
			Content: question,
		})
	}

	history := state.History()

	if len(history) == 0 {
		// First turn: nothing to resolve references against.
		state.RephrasedQuestion = question
	} else {
		rewritten, err := p.rewriter.Rewrite(ctx, history, question)
		if err != nil {
			return nil, collaboratorError("rewrite", err)
		}
		if rewritten = strings.TrimSpace(rewritten); rewritten == "" {
			rewritten = question
		}
		state.RephrasedQuestion = rewritten
	}
	state.Stage = store.StageRewritten

	label, err := p.classifier.Classify(ctx, state.RephrasedQuestion)
	if err != nil {
		return nil, collaboratorError("classify", err)
	}
	state.TopicLabel = label
	state.Stage = store.StageClassified

	var answer string
	if label == store.LabelOnTopic {
		passages, err := p.retriever.Retrieve(ctx, doc.Id, state.RephrasedQuestion)
		if err != nil {
			return nil, collaboratorError("retrieve", err)
		}
		state.Passages = passages
		state.Stage = store.StageRetrieved

		answer, err = p.generator.Generate(ctx, history, passages, state.RephrasedQuestion)
		if err != nil {
			return nil, collaboratorError("generate", err)
		}
		state.Stage = store.StageAnswered
	} else {
		answer = constant.OffTopicReply
		state.Stage = store.StageOffTopicAnswered
	}

	state.Messages = append(state.Messages, store.Message{
		Role:    constant.ChatMessageRoleAssistant,
		Content: answer,
	})

	var toCommit []*entity.ChatMessage
	if appendUser {
		toCommit = append(toCommit, &entity.ChatMessage{
			Content:       question,
			Role:          constant.ChatMessageRoleUser,
			ChatSessionId: sessionID,
		})
	}
	toCommit = append(toCommit, &entity.ChatMessage{
		Content:       answer,
		Role:          constant.ChatMessageRoleAssistant,
		ChatSessionId: sessionID,
	})

	if err := p.turnStore.CommitTurn(ctx, sessionID, sessionTitle(question), toCommit); err != nil {
		return nil, collaboratorError("commit turn", err)
	}

	p.turnCache.Save(state)
	p.logger.Printf("[PIPELINE] Session %s finished at %s", sessionID, state.Stage)

	return &TurnResult{
		Answer:   answer,
		Passages: state.Passages,
		State:    state,
	}, nil
}

func sessionTitle(question string) string {
	title := strings.TrimSpace(question)
	if runes := []rune(title); len(runes) > sessionTitleMaxLen {
		title = string(runes[:sessionTitleMaxLen])
	}
	return title
}
