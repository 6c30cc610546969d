package bootstrap

import (
	"context"
	"log"

	"syncpad-be/internal/config"
	"syncpad-be/internal/controller"
	"syncpad-be/internal/handler"
	"syncpad-be/internal/pkg/logger"
	"syncpad-be/internal/pkg/mailer"
	"syncpad-be/internal/repository/implementation"
	"syncpad-be/internal/repository/memory"
	"syncpad-be/internal/repository/unitofwork"
	"syncpad-be/internal/service"
	"syncpad-be/internal/websocket"
	"syncpad-be/pkg/admin/dashboard"

	pktNats "syncpad-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AppController      controller.IAppController
	AuthController     controller.IAuthController
	NoteController     controller.INoteController
	SharedController   controller.ISharedController
	MiniNoteController controller.IMiniNoteController
	UserController     controller.IUserController
	AdminController    controller.IAdminController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & notifications
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)

	// 2. In-process event bus for storage usage recalculation
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 External infrastructure. All of it degrades gracefully: the app
	// still serves notes when NATS or Redis are down, it just loses
	// realtime notifications and cross-instance fan-out.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	}

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
		rdb = nil
	}

	// WebSocket hub with its own log file so chatty connection churn does
	// not drown the main log.
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.UsageTopic, pubSub)
	consumerService := service.NewConsumerService(cfg.App.UsageTopic, pubSub, uowFactory)

	resetFlows := memory.NewResetFlowRepository()

	authService := service.NewAuthService(uowFactory, resetFlows, emailService, natsPub)
	userService := service.NewUserService(uowFactory)
	noteService := service.NewNoteService(uowFactory, publisherService, natsPub)
	miniNoteService := service.NewMiniNoteService(uowFactory, emailService, natsPub)

	dashboardAggregator := dashboard.NewAggregator(sysLogger)
	adminService := service.NewAdminService(uowFactory, dashboardAggregator, sysLogger, natsPub)

	// 3.5 Notification pipeline: NATS events -> DB row -> hub push
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		AppController:       controller.NewAppController(cfg.App.SPABundleDir),
		AuthController:      controller.NewAuthController(authService),
		NoteController:      controller.NewNoteController(noteService),
		SharedController:    controller.NewSharedController(noteService),
		MiniNoteController:  controller.NewMiniNoteController(miniNoteService),
		UserController:      controller.NewUserController(userService),
		AdminController:     controller.NewAdminController(adminService, authService),

		ConsumerService: consumerService,
	}
}
