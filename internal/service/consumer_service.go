package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"paper-rag-be/internal/dto"
	"paper-rag-be/internal/entity"
	"paper-rag-be/internal/repository/memory"
	"paper-rag-be/internal/repository/specification"
	"paper-rag-be/internal/repository/unitofwork"
	"paper-rag-be/pkg/embedding"
	"paper-rag-be/pkg/events"
	pktNats "paper-rag-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the index topic: it embeds every chunk of a job
// and performs the atomic index swap that activates the new document.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	turnCache         *memory.TurnCache
	indexNotifier     *IndexNotifier
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	turnCache *memory.TurnCache,
	indexNotifier *IndexNotifier,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		turnCache:         turnCache,
		indexNotifier:     indexNotifier,
		eventPublisher:    eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexDocumentMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Indexing document %s (%d chunks)", payload.DocumentId, len(payload.Chunks))

	if err := cs.indexDocument(ctx, &payload); err != nil {
		log.Printf("[ERROR] Indexing failed for document %s: %v", payload.DocumentId, err)
		cs.indexNotifier.Notify(payload.DocumentId, err)
		// The uploader has been told; retrying the job would race a
		// newer upload. Ack and move on.
		msg.Ack()
		return
	}

	cs.indexNotifier.Notify(payload.DocumentId, nil)
	log.Printf("[SUCCESS] Document %s activated with %d chunks", payload.DocumentId, len(payload.Chunks))
	msg.Ack()
}

func (cs *consumerService) indexDocument(ctx context.Context, payload *dto.PublishIndexDocumentMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if document == nil {
		return fmt.Errorf("document %s not found", payload.DocumentId)
	}

	newEmbeddings := make([]*entity.PassageEmbedding, 0, len(payload.Chunks))
	for _, chunk := range payload.Chunks {
		res, err := cs.embeddingProvider.Generate(ctx, chunk.Content, embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("embed chunk %d: %w", chunk.Index, err)
		}

		newEmbeddings = append(newEmbeddings, &entity.PassageEmbedding{
			Id:             uuid.New(),
			DocumentId:     document.Id,
			ChunkIndex:     chunk.Index,
			Content:        chunk.Content,
			Metadata:       chunk.Metadata,
			EmbeddingValue: res.Embedding.Values,
			CreatedAt:      time.Now(),
		})
	}

	// Swap: retire every other document and bring this one online with
	// its embeddings in a single transaction.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().DeactivateAll(ctx); err != nil {
		return err
	}

	if err := uow.PassageEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
		return err
	}

	document.Active = true
	document.ChunkCount = len(newEmbeddings)
	document.DeletedAt = nil
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// Cached turn snapshots refer to the retired index.
	cs.turnCache.Flush()

	if cs.eventPublisher != nil {
		evt := events.NewDocumentActivated(document.Id.String(), document.Filename, document.ChunkCount)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish activation event: %v", err)
		}
	}

	return nil
}
