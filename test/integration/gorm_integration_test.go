package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"paper-rag-be/internal/constant"
	"paper-rag-be/internal/entity"
	"paper-rag-be/internal/repository/specification"
	"paper-rag-be/internal/repository/unitofwork"
	"paper-rag-be/internal/service"
	"paper-rag-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ChatSessionRepository())
	assert.NotNil(t, uow.PassageEmbeddingRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Session Repository", func(t *testing.T) {
		count, err := uow.ChatSessionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Session count: %d", count)
	})

	t.Run("Check Message Repository", func(t *testing.T) {
		count, err := uow.ChatMessageRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Message count: %d", count)
	})
}

func TestTurnCommitRoundTrip(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()
	sessionId := "itest_" + uuid.New().String()[:8]

	uow := uowFactory.NewUnitOfWork(ctx)
	assert.NoError(t, uow.Begin(ctx))

	now := time.Now()
	assert.NoError(t, uow.ChatSessionRepository().Create(ctx, &entity.ChatSession{
		Id:        sessionId,
		Title:     "integration round trip",
		CreatedAt: now,
	}))
	assert.NoError(t, uow.ChatMessageRepository().CreateBulk(ctx, []*entity.ChatMessage{
		{Id: uuid.New(), Role: "user", Content: "question", ChatSessionId: sessionId, CreatedAt: now},
		{Id: uuid.New(), Role: "assistant", Content: "answer", ChatSessionId: sessionId, CreatedAt: now.Add(time.Millisecond)},
	}))
	assert.NoError(t, uow.Commit())

	defer func() {
		cleanup := uowFactory.NewUnitOfWork(ctx)
		_ = cleanup.ChatMessageRepository().DeleteBySessionID(ctx, sessionId)
		_ = cleanup.ChatSessionRepository().Delete(ctx, sessionId)
	}()

	// Read back in chronological order
	reader := uowFactory.NewUnitOfWork(ctx)
	messages, err := reader.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.ChronologicalOrder{},
	)
	assert.NoError(t, err)
	assert.Len(t, messages, 2)
	if len(messages) == 2 {
		assert.Equal(t, "user", messages[0].Role)
		assert.Equal(t, "assistant", messages[1].Role)
	}
}

func TestFirstTurnRenamesPrecreatedSession(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	ctx := context.Background()
	sessionId := "itest_" + uuid.New().String()[:8]

	// Pre-create the session with the placeholder title, like CreateSession does
	uow := uowFactory.NewUnitOfWork(ctx)
	assert.NoError(t, uow.Begin(ctx))
	assert.NoError(t, uow.ChatSessionRepository().Create(ctx, &entity.ChatSession{
		Id:        sessionId,
		Title:     constant.DefaultSessionTitle,
		CreatedAt: time.Now(),
	}))
	assert.NoError(t, uow.Commit())

	defer func() {
		cleanup := uowFactory.NewUnitOfWork(ctx)
		_ = cleanup.ChatMessageRepository().DeleteBySessionID(ctx, sessionId)
		_ = cleanup.ChatSessionRepository().Delete(ctx, sessionId)
	}()

	turnStore := service.NewTurnStore(uowFactory)
	assert.NoError(t, turnStore.CommitTurn(ctx, sessionId, "What is attention?", []*entity.ChatMessage{
		{Role: "user", Content: "What is attention?", ChatSessionId: sessionId},
		{Role: "assistant", Content: "A weighting mechanism.", ChatSessionId: sessionId},
	}))

	reader := uowFactory.NewUnitOfWork(ctx)
	sess, err := reader.ChatSessionRepository().FindByID(ctx, sessionId)
	assert.NoError(t, err)
	if assert.NotNil(t, sess) {
		assert.Equal(t, "What is attention?", sess.Title)
	}

	// A second turn must not rename it again
	assert.NoError(t, turnStore.CommitTurn(ctx, sessionId, "And the encoder?", []*entity.ChatMessage{
		{Role: "user", Content: "And the encoder?", ChatSessionId: sessionId},
		{Role: "assistant", Content: "Six stacked layers.", ChatSessionId: sessionId},
	}))

	sess, err = reader.ChatSessionRepository().FindByID(ctx, sessionId)
	assert.NoError(t, err)
	if assert.NotNil(t, sess) {
		assert.Equal(t, "What is attention?", sess.Title)
	}
}
