package bootstrap

import (
	"context"
	"log"

	"propscore-webapp-be/internal/config"
	"propscore-webapp-be/internal/controller"
	"propscore-webapp-be/internal/handler"
	"propscore-webapp-be/internal/pkg/logger"
	"propscore-webapp-be/internal/pkg/mailer"
	"propscore-webapp-be/internal/repository/memory"
	"propscore-webapp-be/internal/repository/redisstore"
	"propscore-webapp-be/internal/repository/unitofwork"
	"propscore-webapp-be/internal/service"
	"propscore-webapp-be/internal/websocket"
	"propscore-webapp-be/pkg/addressctx"
	"propscore-webapp-be/pkg/events"
	"propscore-webapp-be/pkg/scoring"
	"propscore-webapp-be/pkg/session"
	"propscore-webapp-be/pkg/store"

	pktNats "propscore-webapp-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController    controller.ISearchController
	SessionController   controller.ISessionController
	LeadsController     controller.ILeadsController
	ReportController    controller.IReportController
	OutreachController  controller.IOutreachController
	MarketingController controller.IMarketingController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ProgressHandler *handler.ProgressHandler
	WebSocketHub    *websocket.Hub
}

// NewContainer wires the application graph. db may be nil when no archive
// database is configured; everything durable degrades to session-only state.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	}
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.SMTP.ContactInbox,
	)

	// 2. Session State
	// Redis keeps wizard state shared across instances; without it each
	// instance falls back to its own in-process store.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory session state", err)
			rdb = nil
		}
	}

	var sessionStore store.SessionStore
	var addressStore store.AddressStore
	if rdb != nil {
		st := redisstore.NewStateStore(rdb, sysLogger)
		sessionStore, addressStore = st, st
	} else {
		st := memory.NewStateStore()
		sessionStore, addressStore = st, st
	}

	tracker := session.NewTracker(sessionStore, sysLogger)
	addressCtx := addressctx.NewManager(addressStore, sysLogger)

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v. Analytics events disabled", err)
	}

	// 4. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/progress.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Upstream Client & Services
	scoringClient := scoring.NewClient(cfg.Scoring.BaseURL, cfg.Scoring.DebugLogging, sysLogger)

	publisherService := service.NewPublisherService(events.TypeSearchCompleted, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		events.TypeSearchCompleted,
		uowFactory,
		natsPub,
	)

	searchService := service.NewSearchService(tracker, addressCtx, scoringClient, publisherService, wsHub, sysLogger)
	sessionService := service.NewSessionService(tracker, addressCtx, uowFactory)
	reportService := service.NewReportService(tracker, scoringClient, wsHub, sysLogger)
	outreachService := service.NewOutreachService(tracker, scoringClient, wsHub, sysLogger)
	leadsService := service.NewLeadsService(scoringClient, natsPub, sysLogger)
	contactService := service.NewContactService(uowFactory, emailService, sysLogger)
	planService := service.NewPlanService()

	progressHandler := handler.NewProgressHandler(wsHub, cfg.App.JWTSecret, wsLogger)

	return &Container{
		SearchController:    controller.NewSearchController(searchService),
		SessionController:   controller.NewSessionController(sessionService),
		LeadsController:     controller.NewLeadsController(leadsService),
		ReportController:    controller.NewReportController(reportService),
		OutreachController:  controller.NewOutreachController(outreachService),
		MarketingController: controller.NewMarketingController(planService, contactService),

		ConsumerService: consumerService,

		ProgressHandler: progressHandler,
		WebSocketHub:    wsHub,
	}
}
