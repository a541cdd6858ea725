package service

import (
	"context"
	"time"

	"paper-rag-be/internal/constant"
	"paper-rag-be/internal/entity"
	"paper-rag-be/internal/repository/specification"
	"paper-rag-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// turnStore is the GORM-backed durable side of the chat pipeline: the
// active document, per-session message logs, and the atomic turn commit.
type turnStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTurnStore(uowFactory unitofwork.RepositoryFactory) *turnStore {
	return &turnStore{
		uowFactory: uowFactory,
	}
}

func (ts *turnStore) ActiveDocument(ctx context.Context) (*entity.Document, error) {
	uow := ts.uowFactory.NewUnitOfWork(ctx)
	return uow.DocumentRepository().FindActive(ctx)
}

func (ts *turnStore) LoadMessages(ctx context.Context, sessionID string) ([]*entity.ChatMessage, error) {
	uow := ts.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.ChronologicalOrder{},
	)
}

// CommitTurn creates the session row on first use and appends the turn's
// messages, all inside one transaction.
func (ts *turnStore) CommitTurn(ctx context.Context, sessionID string, title string, messages []*entity.ChatMessage) error {
	uow := ts.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	sess, err := uow.ChatSessionRepository().FindByID(ctx, sessionID)
	if err != nil {
		return err
	}

	now := time.Now()
	if sess == nil {
		if err := uow.ChatSessionRepository().Create(ctx, &entity.ChatSession{
			Id:        sessionID,
			Title:     title,
			CreatedAt: now,
		}); err != nil {
			return err
		}
	} else if sess.Title == constant.DefaultSessionTitle && title != "" {
		// First turn of a pre-created session names it after the question.
		sess.Title = title
		if err := uow.ChatSessionRepository().Update(ctx, sess); err != nil {
			return err
		}
	}

	// Stagger timestamps so (created_at, id) keeps the user message ahead
	// of the assistant reply written in the same transaction.
	for i, msg := range messages {
		if msg.Id == uuid.Nil {
			msg.Id = uuid.New()
		}
		if msg.CreatedAt.IsZero() {
			msg.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		}
	}

	if err := uow.ChatMessageRepository().CreateBulk(ctx, messages); err != nil {
		return err
	}

	return uow.Commit()
}
