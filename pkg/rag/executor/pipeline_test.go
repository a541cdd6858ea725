package executor

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"unicode/utf8"

	"paper-rag-be/internal/constant"
	"paper-rag-be/internal/entity"
	"paper-rag-be/internal/repository/memory"
	"paper-rag-be/pkg/store"

	"github.com/google/uuid"
)

// Stub collaborators. Each records its calls so tests can assert on
// routing, not just on the final answer.

type stubRewriter struct {
	calls      int
	gotHistory []store.Message
	out        string
	err        error
}

func (s *stubRewriter) Rewrite(ctx context.Context, history []store.Message, question string) (string, error) {
	s.calls++
	s.gotHistory = history
	if s.err != nil {
		return "", s.err
	}
	if s.out == "" {
		return "standalone: " + question, nil
	}
	return s.out, nil
}

type stubClassifier struct {
	calls       int
	gotQuestion string
	labels      []store.TopicLabel
	err         error
}

func (s *stubClassifier) Classify(ctx context.Context, question string) (store.TopicLabel, error) {
	s.calls++
	s.gotQuestion = question
	if s.err != nil {
		return store.LabelUnset, s.err
	}
	if len(s.labels) == 0 {
		return store.LabelOnTopic, nil
	}
	label := s.labels[0]
	s.labels = s.labels[1:]
	return label, nil
}

type stubRetriever struct {
	calls    int
	gotDoc   uuid.UUID
	passages []store.Passage
	err      error
}

func (s *stubRetriever) Retrieve(ctx context.Context, documentId uuid.UUID, query string) ([]store.Passage, error) {
	s.calls++
	s.gotDoc = documentId
	if s.err != nil {
		return nil, s.err
	}
	return s.passages, nil
}

type stubGenerator struct {
	calls       int
	gotPassages []store.Passage
	answer      string
	err         error
}

func (s *stubGenerator) Generate(ctx context.Context, history []store.Message, passages []store.Passage, question string) (string, error) {
	s.calls++
	s.gotPassages = passages
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

// fakeTurnStore keeps session logs in memory and counts commits.
type fakeTurnStore struct {
	doc       *entity.Document
	logs      map[string][]*entity.ChatMessage
	commits   int
	commitErr error
}

func newFakeTurnStore(withDoc bool) *fakeTurnStore {
	ts := &fakeTurnStore{logs: make(map[string][]*entity.ChatMessage)}
	if withDoc {
		ts.doc = &entity.Document{Id: uuid.New(), Filename: "paper.pdf", Active: true}
	}
	return ts
}

func (f *fakeTurnStore) ActiveDocument(ctx context.Context) (*entity.Document, error) {
	return f.doc, nil
}

func (f *fakeTurnStore) LoadMessages(ctx context.Context, sessionID string) ([]*entity.ChatMessage, error) {
	msgs := f.logs[sessionID]
	out := make([]*entity.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (f *fakeTurnStore) CommitTurn(ctx context.Context, sessionID string, title string, messages []*entity.ChatMessage) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.commits++
	f.logs[sessionID] = append(f.logs[sessionID], messages...)
	return nil
}

func (f *fakeTurnStore) seed(sessionID string, msgs ...*entity.ChatMessage) {
	f.logs[sessionID] = append(f.logs[sessionID], msgs...)
}

func userMsg(content string) *entity.ChatMessage {
	return &entity.ChatMessage{Role: constant.ChatMessageRoleUser, Content: content}
}

func assistantMsg(content string) *entity.ChatMessage {
	return &entity.ChatMessage{Role: constant.ChatMessageRoleAssistant, Content: content}
}

type pipelineFixture struct {
	rewriter   *stubRewriter
	classifier *stubClassifier
	retriever  *stubRetriever
	generator  *stubGenerator
	turnStore  *fakeTurnStore
	turnCache  *memory.TurnCache
	executor   *PipelineExecutor
}

func newPipelineFixture(withDoc bool) *pipelineFixture {
	f := &pipelineFixture{
		rewriter:   &stubRewriter{},
		classifier: &stubClassifier{},
		retriever: &stubRetriever{passages: []store.Passage{
			{Content: "transformers use attention", Score: 0.91},
			{Content: "positional encodings", Score: 0.84},
		}},
		generator: &stubGenerator{answer: "The paper proposes attention."},
		turnStore: newFakeTurnStore(withDoc),
		turnCache: memory.NewTurnCache(),
	}
	f.executor = NewPipelineExecutor(
		f.rewriter,
		f.classifier,
		f.retriever,
		f.generator,
		f.turnStore,
		f.turnCache,
		log.New(io.Discard, "", 0),
	)
	return f
}

func TestProcessTurnNoDocument(t *testing.T) {
	f := newPipelineFixture(false)

	_, err := f.executor.ProcessTurn(context.Background(), "s1", "What is attention?")
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("err = %v, want ErrNoDocument", err)
	}
	if f.rewriter.calls != 0 || f.classifier.calls != 0 {
		t.Errorf("pipeline ran stages without a document")
	}
}

func TestProcessTurnFirstTurnSkipsRewrite(t *testing.T) {
	f := newPipelineFixture(true)

	result, err := f.executor.ProcessTurn(context.Background(), "s1", "What is attention?")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	if f.rewriter.calls != 0 {
		t.Errorf("rewriter.calls = %d, want 0 on first turn", f.rewriter.calls)
	}
	if got := result.State.RephrasedQuestion; got != "What is attention?" {
		t.Errorf("RephrasedQuestion = %q, want the question unchanged", got)
	}
}

func TestProcessTurnRewriteUsesHistory(t *testing.T) {
	f := newPipelineFixture(true)
	f.turnStore.seed("s1", userMsg("What is attention?"), assistantMsg("A weighting mechanism."))

	result, err := f.executor.ProcessTurn(context.Background(), "s1", "How is it computed?")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	if f.rewriter.calls != 1 {
		t.Fatalf("rewriter.calls = %d, want 1", f.rewriter.calls)
	}
	if len(f.rewriter.gotHistory) != 2 {
		t.Errorf("rewriter history length = %d, want 2", len(f.rewriter.gotHistory))
	}
	if want := "standalone: How is it computed?"; result.State.RephrasedQuestion != want {
		t.Errorf("RephrasedQuestion = %q, want %q", result.State.RephrasedQuestion, want)
	}
	// Downstream stages consume the rewritten question, not the raw one.
	if f.classifier.gotQuestion != result.State.RephrasedQuestion {
		t.Errorf("classifier saw %q, want the rewritten question", f.classifier.gotQuestion)
	}
}

func TestProcessTurnEmptyRewriteFallsBack(t *testing.T) {
	f := newPipelineFixture(true)
	f.rewriter.out = "   "
	f.turnStore.seed("s1", userMsg("Q1"), assistantMsg("A1"))

	result, err := f.executor.ProcessTurn(context.Background(), "s1", "How is it computed?")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}
	if got := result.State.RephrasedQuestion; got != "How is it computed?" {
		t.Errorf("RephrasedQuestion = %q, want fallback to the original question", got)
	}
}

func TestProcessTurnOffTopicSkipsRetrievalAndGeneration(t *testing.T) {
	f := newPipelineFixture(true)
	f.classifier.labels = []store.TopicLabel{store.LabelOffTopic}

	result, err := f.executor.ProcessTurn(context.Background(), "s1", "What's the weather today?")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	if result.Answer != constant.OffTopicReply {
		t.Errorf("Answer = %q, want the fixed refusal", result.Answer)
	}
	if f.retriever.calls != 0 {
		t.Errorf("retriever.calls = %d, want 0 for off-topic", f.retriever.calls)
	}
	if f.generator.calls != 0 {
		t.Errorf("generator.calls = %d, want 0 for off-topic", f.generator.calls)
	}
	if result.State.Stage != store.StageOffTopicAnswered {
		t.Errorf("Stage = %q, want %q", result.State.Stage, store.StageOffTopicAnswered)
	}
	if len(result.Passages) != 0 {
		t.Errorf("Passages = %d, want none", len(result.Passages))
	}
	// The refusal is still a persisted turn.
	if got := len(f.turnStore.logs["s1"]); got != 2 {
		t.Errorf("persisted messages = %d, want 2", got)
	}
}

func TestProcessTurnOnTopicFullPath(t *testing.T) {
	f := newPipelineFixture(true)

	result, err := f.executor.ProcessTurn(context.Background(), "s1", "What is attention?")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	if result.Answer != "The paper proposes attention." {
		t.Errorf("Answer = %q", result.Answer)
	}
	if f.retriever.calls != 1 || f.generator.calls != 1 {
		t.Errorf("retriever/generator calls = %d/%d, want 1/1", f.retriever.calls, f.generator.calls)
	}
	if f.retriever.gotDoc != f.turnStore.doc.Id {
		t.Errorf("retriever queried document %s, want the active one", f.retriever.gotDoc)
	}
	if len(result.Passages) != 2 {
		t.Errorf("Passages = %d, want 2", len(result.Passages))
	}
	if result.State.Stage != store.StageAnswered {
		t.Errorf("Stage = %q, want %q", result.State.Stage, store.StageAnswered)
	}

	logged := f.turnStore.logs["s1"]
	if len(logged) != 2 {
		t.Fatalf("persisted messages = %d, want 2", len(logged))
	}
	if logged[0].Role != constant.ChatMessageRoleUser || logged[1].Role != constant.ChatMessageRoleAssistant {
		t.Errorf("persisted roles = %s, %s; want user then assistant", logged[0].Role, logged[1].Role)
	}
}

func TestProcessTurnEmptyRetrievalStillGenerates(t *testing.T) {
	f := newPipelineFixture(true)
	f.retriever.passages = nil
	f.generator.answer = "The excerpts do not cover that."

	result, err := f.executor.ProcessTurn(context.Background(), "s1", "What is attention?")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	if f.generator.calls != 1 {
		t.Fatalf("generator.calls = %d, want 1 even with no passages", f.generator.calls)
	}
	if len(f.generator.gotPassages) != 0 {
		t.Errorf("generator received %d passages, want 0", len(f.generator.gotPassages))
	}
	if result.Answer != "The excerpts do not cover that." {
		t.Errorf("Answer = %q", result.Answer)
	}
	if len(result.Passages) != 0 {
		t.Errorf("Passages = %d, want none", len(result.Passages))
	}
	if result.State.Stage != store.StageAnswered {
		t.Errorf("Stage = %q, want %q", result.State.Stage, store.StageAnswered)
	}
	// The turn still commits both messages.
	if got := len(f.turnStore.logs["s1"]); got != 2 {
		t.Errorf("persisted messages = %d, want 2", got)
	}
}

func TestProcessTurnGeneratorFailureCommitsNothing(t *testing.T) {
	f := newPipelineFixture(true)
	f.generator.err = errors.New("model unavailable")

	_, err := f.executor.ProcessTurn(context.Background(), "s1", "What is attention?")
	if !errors.Is(err, ErrCollaborator) {
		t.Fatalf("err = %v, want ErrCollaborator", err)
	}
	if f.turnStore.commits != 0 {
		t.Errorf("commits = %d, want 0 on failure", f.turnStore.commits)
	}
	if len(f.turnStore.logs["s1"]) != 0 {
		t.Errorf("session log grew despite the failed turn")
	}
}

func TestProcessTurnClassifierFailureAborts(t *testing.T) {
	f := newPipelineFixture(true)
	f.classifier.err = errors.New("timeout")

	_, err := f.executor.ProcessTurn(context.Background(), "s1", "What is attention?")
	if !errors.Is(err, ErrCollaborator) {
		t.Fatalf("err = %v, want ErrCollaborator", err)
	}
	if f.retriever.calls != 0 {
		t.Errorf("retriever ran after classifier failure")
	}
	if len(f.turnStore.logs["s1"]) != 0 {
		t.Errorf("session log grew despite the failed turn")
	}
}

func TestProcessTurnResubmittedQuestionNotDuplicated(t *testing.T) {
	f := newPipelineFixture(true)
	// A crash after persisting the question leaves the log ending with
	// the user message. Resubmitting must not append it twice.
	f.turnStore.seed("s1", userMsg("What is attention?"))

	result, err := f.executor.ProcessTurn(context.Background(), "s1", "What is attention?")
	if err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	logged := f.turnStore.logs["s1"]
	if len(logged) != 2 {
		t.Fatalf("persisted messages = %d, want 2 (question kept, answer appended)", len(logged))
	}
	if logged[1].Role != constant.ChatMessageRoleAssistant {
		t.Errorf("last message role = %s, want assistant", logged[1].Role)
	}
	if result.Answer == "" {
		t.Errorf("resubmitted question produced no answer")
	}
}

func TestProcessTurnTransientStateReset(t *testing.T) {
	f := newPipelineFixture(true)
	f.classifier.labels = []store.TopicLabel{store.LabelOnTopic, store.LabelOffTopic}

	first, err := f.executor.ProcessTurn(context.Background(), "s1", "What is attention?")
	if err != nil {
		t.Fatalf("first turn: %v", err)
	}
	if len(first.State.Passages) == 0 {
		t.Fatalf("first turn retrieved nothing")
	}

	second, err := f.executor.ProcessTurn(context.Background(), "s1", "What's for dinner?")
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}

	if len(second.State.Passages) != 0 {
		t.Errorf("second turn carries %d passages from the previous turn", len(second.State.Passages))
	}
	if second.State.TopicLabel != store.LabelOffTopic {
		t.Errorf("TopicLabel = %q, want off_topic", second.State.TopicLabel)
	}
	if second.State.CurrentQuestion != "What's for dinner?" {
		t.Errorf("CurrentQuestion = %q, leaked from previous turn", second.State.CurrentQuestion)
	}
}

func TestProcessTurnSessionIsolation(t *testing.T) {
	f := newPipelineFixture(true)

	if _, err := f.executor.ProcessTurn(context.Background(), "alice", "What is attention?"); err != nil {
		t.Fatalf("alice turn: %v", err)
	}
	if _, err := f.executor.ProcessTurn(context.Background(), "bob", "What are encoders?"); err != nil {
		t.Fatalf("bob turn: %v", err)
	}

	if got := len(f.turnStore.logs["alice"]); got != 2 {
		t.Errorf("alice log = %d messages, want 2", got)
	}
	if got := len(f.turnStore.logs["bob"]); got != 2 {
		t.Errorf("bob log = %d messages, want 2", got)
	}
	if f.turnStore.logs["alice"][0].Content == f.turnStore.logs["bob"][0].Content {
		t.Errorf("session logs bled into each other")
	}
}

func TestSessionTitleTruncatesOnRunes(t *testing.T) {
	long := strings.Repeat("é", sessionTitleMaxLen+10)

	title := sessionTitle(long)
	if !utf8.ValidString(title) {
		t.Fatalf("title is not valid UTF-8: %q", title)
	}
	if got := utf8.RuneCountInString(title); got != sessionTitleMaxLen {
		t.Errorf("title length = %d runes, want %d", got, sessionTitleMaxLen)
	}

	if short := sessionTitle("  What is attention?  "); short != "What is attention?" {
		t.Errorf("short title = %q, want trimmed question", short)
	}
}

func TestProcessTurnCachesSnapshot(t *testing.T) {
	f := newPipelineFixture(true)

	if _, err := f.executor.ProcessTurn(context.Background(), "s1", "What is attention?"); err != nil {
		t.Fatalf("ProcessTurn: %v", err)
	}

	snapshot, ok := f.turnCache.Get("s1")
	if !ok {
		t.Fatalf("no cached snapshot for completed turn")
	}
	if snapshot.Stage != store.StageAnswered {
		t.Errorf("cached Stage = %q, want %q", snapshot.Stage, store.StageAnswered)
	}
	if len(snapshot.Messages) != 2 {
		t.Errorf("cached messages = %d, want 2", len(snapshot.Messages))
	}
}
