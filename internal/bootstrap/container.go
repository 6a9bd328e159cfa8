package bootstrap

import (
	"context"
	"log"

	"skillswap-be/internal/config"
	"skillswap-be/internal/controller"
	"skillswap-be/internal/handler"
	"skillswap-be/internal/pkg/logger"
	"skillswap-be/internal/repository/memory"
	"skillswap-be/internal/repository/unitofwork"
	"skillswap-be/internal/service"
	"skillswap-be/internal/websocket"

	pktNats "skillswap-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Topic for the in-process message-persisted pipeline.
const chatEventsTopic = "chat.message.persisted"

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	UserController  controller.IUserController
	SkillController controller.ISkillController

	// Background Services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Chat
	ChatHandler  *handler.ChatHandler
	WebSocketHub *websocket.Hub
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

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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
		log.Printf("[WARN] Failed to connect to Redis: %v. Cross-instance delivery disabled", err)
		rdb = nil
	}

	// Presence
	presenceRepo := memory.NewPresenceRepository()

	// WebSocket Hub
	chatLogger := logger.NewIsolatedLogger(cfg.App.ChatLogFilePath)
	wsHub := websocket.NewHub(rdb, presenceRepo, chatLogger)
	go wsHub.Run(context.Background())

	// 3. Services
	publisherService := service.NewPublisherService(chatEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, chatEventsTopic, natsPub)

	authService := service.NewAuthService(uowFactory, natsPub, cfg.App.TokenTTLHours)
	userService := service.NewUserService(uowFactory, presenceRepo)
	skillService := service.NewSkillService(uowFactory)
	messageService := service.NewMessageService(uowFactory, publisherService)

	// Relay (protocol state machine over the hub)
	relay := websocket.NewRelay(wsHub, messageService, chatLogger)

	// Handler
	chatHandler := handler.NewChatHandler(messageService, wsHub, relay, chatLogger)

	sysLogger.Info("Bootstrap", "Container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
		"redis":       rdb != nil,
		"nats":        natsPub != nil,
	})

	// 4. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService, userService),
		UserController:  controller.NewUserController(userService, skillService),
		SkillController: controller.NewSkillController(skillService),

		ConsumerService: consumerService,

		ChatHandler:  chatHandler,
		WebSocketHub: wsHub,
	}
}
