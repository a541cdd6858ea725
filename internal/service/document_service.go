package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paper-rag-be/internal/dto"
	"paper-rag-be/internal/entity"
	"paper-rag-be/internal/pkg/logger"
	"paper-rag-be/internal/repository/memory"
	"paper-rag-be/internal/repository/unitofwork"
	"paper-rag-be/pkg/events"
	"paper-rag-be/pkg/extract"
	pktNats "paper-rag-be/pkg/nats"
	"paper-rag-be/pkg/utils"

	"github.com/google/uuid"
)

const indexWaitTimeout = 5 * time.Minute

type IDocumentService interface {
	Upload(ctx context.Context, originalFilename string, data []byte) (*dto.UploadDocumentResponse, error)
	ClearAll(ctx context.Context) (*dto.ClearAllResponse, error)
	Health(ctx context.Context) (*dto.HealthResponse, error)
}

// documentService owns the single-document lifecycle: upload, chunk,
// hand off to the indexing consumer, and the destructive clear-all.
type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	textExtractor    extract.TextExtractor
	publisherService IPublisherService
	indexNotifier    *IndexNotifier
	turnCache        *memory.TurnCache
	eventPublisher   *pktNats.Publisher
	sysLogger        logger.ILogger
	uploadDir        string
	chunkSize        int
	chunkOverlap     int
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	textExtractor extract.TextExtractor,
	publisherService IPublisherService,
	indexNotifier *IndexNotifier,
	turnCache *memory.TurnCache,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	uploadDir string,
	chunkSize int,
	chunkOverlap int,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		textExtractor:    textExtractor,
		publisherService: publisherService,
		indexNotifier:    indexNotifier,
		turnCache:        turnCache,
		eventPublisher:   eventPublisher,
		sysLogger:        sysLogger,
		uploadDir:        uploadDir,
		chunkSize:        chunkSize,
		chunkOverlap:     chunkOverlap,
	}
}

// Upload stores the file, chunks its text and publishes one index job.
// It returns only after the consumer finished building the new index, so
// a successful response means the document is active and queryable.
func (ds *documentService) Upload(ctx context.Context, originalFilename string, data []byte) (*dto.UploadDocumentResponse, error) {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !ds.isSupported(ext) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}

	documentId := uuid.New()

	if err := os.MkdirAll(ds.uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	storedPath := filepath.Join(ds.uploadDir, documentId.String()+ext)
	if err := os.WriteFile(storedPath, data, 0644); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	text, err := ds.textExtractor.Extract(ctx, storedPath)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyDocument
	}

	chunks := ds.chunk(text)
	if len(chunks) == 0 {
		return nil, ErrEmptyDocument
	}

	title := strings.TrimSuffix(originalFilename, ext)
	document := &entity.Document{
		Id:        documentId,
		Filename:  originalFilename,
		Title:     title,
		Active:    false, // Activated by the consumer once indexed
		CreatedAt: time.Now(),
	}

	uow := ds.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()
	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishIndexDocumentMessage{
		DocumentId: documentId,
		Chunks:     chunks,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}

	done := ds.indexNotifier.Register(documentId)

	if err := ds.publisherService.Publish(ctx, msgJson); err != nil {
		ds.indexNotifier.Forget(documentId)
		return nil, fmt.Errorf("publish index job: %w", err)
	}

	ds.sysLogger.Info("document", "Index job published", map[string]interface{}{
		"document_id": documentId.String(),
		"filename":    originalFilename,
		"chunks":      len(chunks),
	})

	select {
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrIndexingFailed, err)
		}
	case <-time.After(indexWaitTimeout):
		ds.indexNotifier.Forget(documentId)
		return nil, fmt.Errorf("%w: timed out", ErrIndexingFailed)
	case <-ctx.Done():
		ds.indexNotifier.Forget(documentId)
		return nil, ctx.Err()
	}

	return &dto.UploadDocumentResponse{
		DocumentId: documentId,
		Filename:   originalFilename,
		Title:      title,
		ChunkCount: len(chunks),
	}, nil
}

// chunk splits by markdown section first, then by size within a section.
// Section headers travel with every chunk as provenance metadata.
func (ds *documentService) chunk(text string) []dto.ChunkPayload {
	var chunks []dto.ChunkPayload
	for _, section := range utils.SplitMarkdownSections(text) {
		for _, piece := range utils.SplitText(section.Body, ds.chunkSize, ds.chunkOverlap) {
			if strings.TrimSpace(piece) == "" {
				continue
			}
			chunks = append(chunks, dto.ChunkPayload{
				Index:    len(chunks),
				Content:  piece,
				Metadata: section.Headers,
			})
		}
	}
	return chunks
}

func (ds *documentService) isSupported(ext string) bool {
	for _, supported := range ds.textExtractor.SupportedExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// ClearAll wipes documents, embeddings, sessions and messages in one
// transaction, then drops the in-memory turn cache.
func (ds *documentService) ClearAll(ctx context.Context) (*dto.ClearAllResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	sessionCount, err := uow.ChatSessionRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteAll(ctx); err != nil {
		return nil, err
	}
	if err := uow.ChatSessionRepository().DeleteAll(ctx); err != nil {
		return nil, err
	}
	if err := uow.PassageEmbeddingRepository().DeleteAllUnscoped(ctx); err != nil {
		return nil, err
	}
	if err := uow.DocumentRepository().DeleteAll(ctx); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	ds.turnCache.Flush()

	if ds.eventPublisher != nil {
		if err := ds.eventPublisher.Publish(ctx, events.NewDocumentsCleared()); err != nil {
			ds.sysLogger.Warn("document", "Failed to publish clear event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	ds.sysLogger.Info("document", "Cleared all documents and sessions", map[string]interface{}{
		"deleted_sessions": sessionCount,
	})

	return &dto.ClearAllResponse{DeletedSessions: sessionCount}, nil
}

func (ds *documentService) Health(ctx context.Context) (*dto.HealthResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindActive(ctx)
	if err != nil {
		return nil, err
	}

	sessionCount, err := uow.ChatSessionRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	response := &dto.HealthResponse{
		Status:       "ok",
		SessionCount: sessionCount,
	}
	if document != nil {
		response.DocumentLoaded = true
		response.Filename = document.Filename
		response.ChunkCount = document.ChunkCount
	}

	return response, nil
}
