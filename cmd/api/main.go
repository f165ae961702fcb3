package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Ibere22/Quiz-Website-sub001/internal/config"
	"github.com/Ibere22/Quiz-Website-sub001/internal/handler"
	"github.com/Ibere22/Quiz-Website-sub001/internal/middleware"
	pgRepo "github.com/Ibere22/Quiz-Website-sub001/internal/repository/postgres"
	redisRepo "github.com/Ibere22/Quiz-Website-sub001/internal/repository/redis"
	"github.com/Ibere22/Quiz-Website-sub001/internal/service"
	"github.com/Ibere22/Quiz-Website-sub001/pkg/auth"
	"github.com/Ibere22/Quiz-Website-sub001/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	achievementRepo := pgRepo.NewAchievementRepo(db)
	friendshipRepo := pgRepo.NewFriendshipRepo(db)
	messageRepo := pgRepo.NewMessageRepo(db)
	announcementRepo := pgRepo.NewAnnouncementRepo(db)

	sessionTTL := time.Duration(cfg.Delivery.SessionTTLMinutes) * time.Minute
	sessionRepo, err := redisRepo.NewSessionRepo(redisClient, sessionTTL)
	if err != nil {
		log.Printf("Failed to initialize SessionRepo: %v", err)
		os.Exit(1)
	}

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	rankingService := service.NewRankingService(attemptRepo, quizRepo, userRepo)
	rankingService.SetCache(cacheRepo)
	achievementService := service.NewAchievementService(achievementRepo, attemptRepo, quizRepo, rankingService)
	deliveryService := service.NewDeliveryService(quizRepo, questionRepo, attemptRepo, sessionRepo, achievementService)
	quizService := service.NewQuizService(quizRepo, achievementService)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, attemptRepo, achievementRepo, quizRepo)
	socialService := service.NewSocialService(friendshipRepo, messageRepo, userRepo)
	announcementService := service.NewAnnouncementService(announcementRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, userService)
	quizHandler := handler.NewQuizHandler(quizService, rankingService, userService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)
	userHandler := handler.NewUserHandler(userService, rankingService, achievementService)
	socialHandler := handler.NewSocialHandler(socialService)
	announcementHandler := handler.NewAnnouncementHandler(announcementService, userService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			strictLimit := rateLimiter.Limit(middleware.StrictAuthRateLimitConfig())
			authGroup.POST("/register", strictLimit, authHandler.Register)
			authGroup.POST("/login", strictLimit, authHandler.Login)
		}

		// Текущий пользователь
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", authHandler.Me)
			users.GET("/me/attempts", userHandler.ListMyAttempts)
			users.GET("/me/achievements", userHandler.ListMyAchievements)
		}

		// Публичные профили
		profileWithID := api.Group("/users/:id")
		profileWithID.Use(middleware.ExtractUintParam("id", "userID"))
		{
			profileWithID.GET("", userHandler.GetProfile)
		}

		// Лидерборд (публичный маршрут), выгрузка только для аутентифицированных
		api.GET("/leaderboard", userHandler.GetLeaderboard)
		api.GET("/leaderboard/export", authMiddleware.RequireAuth(), userHandler.ExportLeaderboard)

		// Викторины
		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", quizHandler.ListQuizzes)
			quizzes.GET("/popular", quizHandler.ListPopular)
			quizzes.POST("", authMiddleware.RequireAuth(), quizHandler.CreateQuiz)

			// Группа маршрутов, требующих quizID
			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", quizHandler.GetQuiz)
				quizWithID.GET("/summary", quizHandler.GetQuizSummary)

				// Маршруты для аутентифицированных пользователей
				authedQuizzes := quizWithID.Group("")
				authedQuizzes.Use(authMiddleware.RequireAuth())
				{
					authedQuizzes.DELETE("", quizHandler.DeleteQuiz)
					authedQuizzes.POST("/start", deliveryHandler.StartQuiz)
				}
			}
		}

		// Прохождение: сессия привязана к пользователю, ID викторины не нужен
		deliveryGroup := api.Group("/delivery")
		deliveryGroup.Use(authMiddleware.RequireAuth())
		{
			deliveryGroup.GET("/state", deliveryHandler.CurrentState)
			deliveryGroup.POST("/answer", deliveryHandler.SubmitAnswer)
			deliveryGroup.POST("/advance", deliveryHandler.Advance)
		}

		// Друзья
		friends := api.Group("/friends")
		friends.Use(authMiddleware.RequireAuth())
		{
			friends.GET("", socialHandler.ListFriends)
			friends.GET("/pending", socialHandler.ListPendingRequests)
			friends.POST("/requests", socialHandler.SendFriendRequest)
			friends.POST("/requests/:id/accept",
				middleware.ExtractUintParam("id", "friendshipID"), socialHandler.AcceptFriendRequest)
			friends.DELETE("/:id",
				middleware.ExtractUintParam("id", "friendID"), socialHandler.RemoveFriend)
		}

		// Личные сообщения
		messages := api.Group("/messages")
		messages.Use(authMiddleware.RequireAuth())
		{
			messages.GET("", socialHandler.Inbox)
			messages.GET("/unread-count", socialHandler.UnreadCount)
			messages.POST("", socialHandler.SendMessage)
			messages.PUT("/:id/read",
				middleware.ExtractUintParam("id", "messageID"), socialHandler.MarkMessageRead)
		}

		// Объявления
		announcements := api.Group("/announcements")
		{
			announcements.GET("", announcementHandler.List)

			adminAnnouncements := announcements.Group("")
			adminAnnouncements.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
			{
				adminAnnouncements.POST("", announcementHandler.Create)
				adminAnnouncements.DELETE("/:id",
					middleware.ExtractUintParam("id", "announcementID"), announcementHandler.Delete)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ждем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
