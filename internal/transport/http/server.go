package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"chirpnet/internal/auth"
	"chirpnet/internal/config"
	"chirpnet/internal/database"
	"chirpnet/internal/handler"
	"chirpnet/internal/queue"
	redisclient "chirpnet/internal/redis"
	"chirpnet/internal/repository"
	"chirpnet/internal/service"
	"chirpnet/internal/worker"
)

func Run() error {
	ctx := context.Background()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close(context.Background())

	// 3. Connect to Redis (cascade outbox)
	rdb, err := redisclient.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := rdb.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer rdb.Close()

	// 4. Repositories
	userRepo := repository.NewUserRepository(db.Users)
	postRepo := repository.NewPostRepository(db.Posts)
	commentRepo := repository.NewCommentRepository(db.Comments)
	replyRepo := repository.NewReplyRepository(db.Replies)
	notificationRepo := repository.NewNotificationRepository(db.Notifications)

	// 5. Services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenMaxAge)
	publisher := queue.NewPublisher(rdb.Client)

	mediaService, err := service.NewMediaService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create media service: %w", err)
	}

	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	userService := service.NewUserService(userRepo, tokens, mediaService, publisher)
	followService := service.NewFollowService(userRepo, notificationService)
	postService := service.NewPostService(postRepo, userRepo, mediaService, notificationService, publisher)
	commentService := service.NewCommentService(commentRepo, replyRepo, postRepo, notificationService, publisher)
	feedService := service.NewFeedService(postRepo, userRepo)

	// 6. Cascade workers
	consumer := queue.NewConsumer(rdb.Client)
	cascadeHandler := worker.NewHandler(postRepo, commentRepo, replyRepo, userRepo)
	managerCfg := worker.DefaultManagerConfig()
	managerCfg.WorkerCount = cfg.WorkerCount
	manager := worker.NewManager(consumer, cascadeHandler, managerCfg)
	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	defer manager.Stop()

	// 7. Router
	router := NewRouter(RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService),
		UserHandler:         handler.NewUserHandler(userService, followService, postService),
		PostHandler:         handler.NewPostHandler(postService),
		CommentHandler:      handler.NewCommentHandler(commentService),
		FeedHandler:         handler.NewFeedHandler(feedService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		Tokens:              tokens,
	})

	// 8. Serve
	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
