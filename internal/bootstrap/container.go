package bootstrap

import (
	"context"
	"log"

	"refund-decision-be/internal/config"
	"refund-decision-be/internal/controller"
	"refund-decision-be/internal/handler"
	"refund-decision-be/internal/pkg/logger"
	"refund-decision-be/internal/pkg/mailer"
	"refund-decision-be/internal/repository/cache"
	"refund-decision-be/internal/repository/memory"
	"refund-decision-be/internal/repository/unitofwork"
	"refund-decision-be/internal/service"
	"refund-decision-be/internal/websocket"
	pktNats "refund-decision-be/pkg/nats"
	"refund-decision-be/pkg/refund/decision"
	refundEvents "refund-decision-be/pkg/refund/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RefundController controller.IRefundController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	HoldCallService *service.HoldCallService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus (in-process audit topic)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	c := &Container{Logger: sysLogger}
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	// NATS is optional: without it events are dropped and Hold & Call mail is off
	var bus refundEvents.Bus
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		bus = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	var natsSub *pktNats.Subscriber
	if natsPub != nil {
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
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
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Case cache and cluster fan-out disabled", err)
		rdb.Close()
		rdb = nil
	} else {
		c.closers = append(c.closers, func() { rdb.Close() })
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.NotificationLogPath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run(ctx)

	// 4. Services
	engine := decision.NewEngine(cfg.Policy)
	pendingRepo := memory.NewPendingDecisionRepository(cfg.Decision.PendingTTL)
	caseCache := cache.NewRedisCaseCache(rdb, cfg.Decision.RecordCacheTTL, sysLogger)

	publisherService := service.NewPublisherService(cfg.App.AuditTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.AuditTopic, uowFactory, sysLogger)

	refundService := service.NewRefundService(
		uowFactory,
		engine,
		pendingRepo,
		caseCache,
		wsHub,
		refundEvents.NewNatsPublisher(bus, sysLogger),
		publisherService,
		sysLogger,
	)

	if natsSub != nil {
		c.HoldCallService = service.NewHoldCallService(natsSub, emailService, cfg.Decision.HoldCallMailbox, sysLogger)
	}

	// 5. Controllers
	c.RefundController = controller.NewRefundController(refundService)
	c.NotificationHandler = handler.NewNotificationHandler(wsHub, cfg.App.JwtSecret, wsLogger)
	c.WebSocketHub = wsHub
	c.ConsumerService = consumerService

	return c
}

// Close releases broker and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}
