package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"voice-chatbot-be/internal/config"
	"voice-chatbot-be/internal/controller"
	"voice-chatbot-be/internal/pkg/logger"
	"voice-chatbot-be/internal/repository/implementation"
	"voice-chatbot-be/internal/repository/memory"
	"voice-chatbot-be/internal/service"
	"voice-chatbot-be/internal/websocket"
	"voice-chatbot-be/pkg/embedding"
	"voice-chatbot-be/pkg/llm/factory"
	"voice-chatbot-be/pkg/rag/gate"
	"voice-chatbot-be/pkg/rag/language"
	"voice-chatbot-be/pkg/rag/response"
	"voice-chatbot-be/pkg/speech"

	pkgNats "voice-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController
	HealthController   controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
	WsDispatcher *websocket.Dispatcher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ragLogger := log.New(os.Stdout, "", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	embedder := embedding.NewEmbedder(embeddingProvider, cfg.Rag.VectorDimension)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	generator := response.NewGenerator(llmProvider, ragLogger)
	normalizer := language.NewNormalizer(llmProvider, ragLogger)
	greeter := gate.NewGreeter()

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Repositories
	chunkRepo := implementation.NewDocumentChunkRepository(db)
	audioRepo := memory.NewAudioFileRepository(1 * time.Hour)

	// 5. Services
	speechClient := speech.NewOpenAISpeech(cfg.Keys.OpenAI)
	audioService := service.NewAudioService(
		speechClient,
		speechClient,
		audioRepo,
		cfg.App.StaticDir,
		cfg.App.BaseURL,
		sysLogger,
	)

	chatService := service.NewChatService(
		embedder,
		chunkRepo,
		generator,
		normalizer,
		greeter,
		cfg.Rag.TopK,
		sysLogger,
	)

	publisherService := service.NewPublisherService(pubSub, cfg.Keys.IngestTopic, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		chunkRepo,
		embedder,
		natsPub,
	)

	notifierService := service.NewNotifierService(natsSub, wsHub, wsLogger)
	go notifierService.Start()

	// 6. WebSocket Dispatcher
	wsDispatcher := websocket.NewDispatcher(chatService, audioService, cfg.Voice.Enabled, wsLogger)

	// 7. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService, audioService, cfg.Voice.Enabled),
		DocumentController: controller.NewDocumentController(publisherService),
		HealthController:   controller.NewHealthController(cfg.Voice.Enabled, chunkRepo, wsHub, audioRepo),

		ConsumerService: consumerService,

		WebSocketHub: wsHub,
		WsDispatcher: wsDispatcher,
	}
}
