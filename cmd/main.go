package main

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/caffeinepub/cybermeet/internal/cache"
	"github.com/caffeinepub/cybermeet/internal/config"
	"github.com/caffeinepub/cybermeet/internal/domain"
	"github.com/caffeinepub/cybermeet/internal/events"
	"github.com/caffeinepub/cybermeet/internal/handler"
	"github.com/caffeinepub/cybermeet/internal/repository"
	"github.com/caffeinepub/cybermeet/internal/service"
	"github.com/caffeinepub/cybermeet/pkg/database"
	pkglog "github.com/caffeinepub/cybermeet/pkg/log"
	"github.com/caffeinepub/cybermeet/pkg/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "cybermeet",
	})
	logger := pkglog.L()

	// Connect to database using GORM
	db, err := database.New(&database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate
	if err := database.AutoMigrate(db,
		&domain.ProfileModel{},
		&domain.OperatorRoleModel{},
		&domain.RoomModel{},
		&domain.ParticipantModel{},
		&domain.MessageModel{},
		&domain.NoteModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Initialize repositories
	roomRepo := repository.NewGormRoomRepository(db)
	profileRepo := repository.NewGormProfileRepository(db)
	roleRepo := repository.NewGormOperatorRoleRepository(db)
	noteRepo := repository.NewGormNoteRepository(db)

	var msgRepo repository.MessageRepository
	switch cfg.Messages.Store {
	case "cassandra":
		msgRepo, err = repository.NewCassandraMessageRepository(cfg.Cassandra)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to cassandra")
		}
		logger.Info().Msg("cassandra message store connected")
	default:
		msgRepo = repository.NewGormMessageRepository(db)
	}
	defer msgRepo.Close()

	// Initialize message cache
	var msgCache cache.MessageCache
	if cfg.Redis.Enabled {
		msgCache, err = cache.NewRedisMessageCache(cfg.Redis, cfg.Cache.Prefix)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		logger.Info().Msg("redis cache connected")
	} else {
		msgCache = cache.NewNopMessageCache()
	}
	defer msgCache.Close()

	// Initialize event producer
	var producer events.Producer
	if cfg.Kafka.Enabled {
		producer, err = events.NewConfluentProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Partitions)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create kafka producer")
		}
		logger.Info().Str("topic", cfg.Kafka.Topic).Msg("kafka producer connected")
	} else {
		producer = events.NewNopProducer()
	}
	defer producer.Close()

	// Initialize services
	roomService := service.NewRoomService(roomRepo, profileRepo, producer)
	messageService := service.NewMessageService(roomRepo, msgRepo, msgCache, cfg.Cache.TTL, producer)
	profileService := service.NewProfileService(profileRepo)
	accessService := service.NewAccessService(roleRepo, cfg.Access.BootstrapAdmins, producer)
	noteService := service.NewNoteService(noteRepo)

	// Initialize identity middleware
	identity, err := middleware.NewIdentityMiddleware(cfg.Identity.Secret)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create identity middleware")
	}

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(roomService, messageService, profileService, accessService, noteService, identity)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Register routes
	httpHandler.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Str("driver", cfg.Database.Driver).Str("message_store", cfg.Messages.Store).Msg("cybermeet starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
