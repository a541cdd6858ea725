package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paper-rag-be/internal/constant"
	"paper-rag-be/internal/dto"
	"paper-rag-be/internal/entity"
	"paper-rag-be/internal/repository/memory"
	"paper-rag-be/internal/repository/specification"
	"paper-rag-be/internal/repository/unitofwork"
	"paper-rag-be/pkg/embedding"
	"paper-rag-be/pkg/llm"
	"paper-rag-be/pkg/rag/classifier"
	"paper-rag-be/pkg/rag/executor"
	"paper-rag-be/pkg/rag/generator"
	"paper-rag-be/pkg/rag/retriever"
	"paper-rag-be/pkg/rag/rewriter"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, sessionId string) ([]*dto.GetChatHistoryResponse, error)
	GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error)
}

// chatService wires the pipeline components and fronts them with the
// session CRUD surface.
type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	pipelineExecutor *executor.PipelineExecutor
	turnCache        *memory.TurnCache
	llmLogger        *log.Logger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	turnCache *memory.TurnCache,
	topK int,
	fetchK int,
	mmrLambda float64,
) IChatService {
	llmLogger := initLLMLogger()

	embeddingRepo := uowFactory.NewUnitOfWork(context.Background()).PassageEmbeddingRepository()

	pipelineExecutor := executor.NewPipelineExecutor(
		rewriter.NewRewriter(llmProvider, llmLogger),
		classifier.NewClassifier(llmProvider, llmLogger),
		retriever.NewRetriever(embeddingProvider, embeddingRepo, topK, fetchK, mmrLambda, llmLogger),
		generator.NewGenerator(llmProvider, llmLogger),
		NewTurnStore(uowFactory),
		turnCache,
		llmLogger,
	)

	return &chatService{
		uowFactory:       uowFactory,
		pipelineExecutor: pipelineExecutor,
		turnCache:        turnCache,
		llmLogger:        llmLogger,
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// CreateSession mints a fresh session id and persists the row so it shows
// up in listings before the first turn.
func (cs *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	sessionId := fmt.Sprintf("session_%s", strings.ReplaceAll(uuid.New().String(), "-", "")[:8])

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &entity.ChatSession{
		Id:        sessionId,
		Title:     constant.DefaultSessionTitle,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{SessionId: sessionId}, nil
}

func (cs *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionId := request.SessionId
	if sessionId == "" {
		sessionId = constant.DefaultSessionID
	}

	result, err := cs.pipelineExecutor.ProcessTurn(ctx, sessionId, request.Question)
	if err != nil {
		return nil, err
	}

	passages := make([]dto.PassageDTO, 0, len(result.Passages))
	for _, p := range result.Passages {
		passages = append(passages, dto.PassageDTO{
			Content:  p.Content,
			Metadata: p.Metadata,
			Score:    p.Score,
		})
	}

	return &dto.SendChatResponse{
		SessionId:         sessionId,
		Answer:            result.Answer,
		RephrasedQuestion: result.State.RephrasedQuestion,
		TopicLabel:        result.State.TopicLabel,
		Passages:          passages,
	}, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, sessionId string) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindByID(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.ChronologicalOrder{},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetChatHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, &dto.GetChatHistoryResponse{
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}

	return response, nil
}

func (cs *chatService) GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(sessions))
	for _, s := range sessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
		})
	}

	return response, nil
}
