package bootstrap

import (
	"log"

	"paper-rag-be/internal/config"
	"paper-rag-be/internal/controller"
	"paper-rag-be/internal/pkg/logger"
	"paper-rag-be/internal/repository/memory"
	"paper-rag-be/internal/repository/unitofwork"
	"paper-rag-be/internal/service"
	"paper-rag-be/pkg/embedding"
	"paper-rag-be/pkg/extract"
	"paper-rag-be/pkg/llm/factory"

	pktNats "paper-rag-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController
	SystemController   controller.ISystemController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GoogleGeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GoogleGeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// In-memory turn cache shared by the pipeline and the swap path
	turnCache := memory.NewTurnCache()
	indexNotifier := service.NewIndexNotifier()
	textExtractor := extract.NewPdftotextExtractor(cfg.Ai.PdftotextBinary)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Ai.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedTopic,
		uowFactory,
		embeddingProvider,
		turnCache,
		indexNotifier,
		natsPub,
	)

	// Cross-instance cache invalidation worker
	invalidationService := service.NewInvalidationService(natsSub, turnCache, sysLogger)
	if natsSub != nil {
		go invalidationService.Start()
	}

	chatService := service.NewChatService(
		uowFactory,
		embeddingProvider,
		llmProvider,
		turnCache,
		cfg.Retrieval.TopK,
		cfg.Retrieval.FetchK,
		cfg.Retrieval.MMRLambda,
	)

	documentService := service.NewDocumentService(
		uowFactory,
		textExtractor,
		publisherService,
		indexNotifier,
		turnCache,
		natsPub,
		sysLogger,
		cfg.App.UploadDir,
		cfg.Chunking.ChunkSize,
		cfg.Chunking.ChunkOverlap,
	)

	// 5. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		DocumentController: controller.NewDocumentController(documentService, cfg.App.MaxUploadSizeMB),
		SystemController:   controller.NewSystemController(documentService),

		ConsumerService: consumerService,
	}
}
