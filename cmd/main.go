package main

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gopher0727/DailyQ/config"
	"github.com/Gopher0727/DailyQ/internal/cache"
	"github.com/Gopher0727/DailyQ/internal/handlers"
	"github.com/Gopher0727/DailyQ/internal/repositories"
	"github.com/Gopher0727/DailyQ/internal/routers"
	"github.com/Gopher0727/DailyQ/internal/scheduler"
	"github.com/Gopher0727/DailyQ/internal/services"
	"github.com/Gopher0727/DailyQ/internal/storage"
	logger "github.com/Gopher0727/DailyQ/middleware/log"
	"github.com/Gopher0727/DailyQ/pkg/utils"
	"github.com/Gopher0727/DailyQ/utils/ratelimit"
)

func main() {
	cfg, err := config.LoadConfig("./config.toml")
	if err != nil {
		log.Fatalf("配置初始化失败: %v", err)
	}

	// 初始化日志
	zlog, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer zlog.Close()

	// JWT 密钥
	utils.SetJWTSecret(cfg.JWT.Secret)

	// 初始化 PostgreSQL
	dsn := storage.BuildDSN(cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	postgres, err := storage.InitPostgres(dsn, cfg.Postgres.MaxIdleConns, cfg.Postgres.MaxOpenConns)
	if err != nil {
		log.Fatalf("postgres 初始化失败: %v", err)
	}

	// 初始化 Redis
	redisClient, err := storage.InitRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize, cfg.Redis.MinIdleConns)
	if err != nil {
		log.Fatalf("redis 初始化失败: %v", err)
	}

	// 初始化缓存和限流器
	redisCache := cache.New(redisClient, zlog.Logger)
	limiter := ratelimit.NewFixedWindowLimiter(redisClient, zlog.Logger, true)

	// 初始化仓储层
	userRepo := repositories.NewUserRepository(postgres)
	questionRepo := repositories.NewQuestionRepository(postgres)
	groupRepo := repositories.NewGroupRepository(postgres)
	answerRepo := repositories.NewAnswerRepository(postgres)

	// 初始化服务层
	authService := services.NewAuthService(userRepo)
	questionService := services.NewQuestionService(questionRepo, zlog.Logger)
	groupService := services.NewGroupService(groupRepo, redisCache)
	answerService := services.NewAnswerService(answerRepo, groupRepo)

	// 进程内调度器，和外部 HTTP cron 互为兜底
	if cfg.Cron.Enabled {
		sched := scheduler.New(questionService, zlog.Logger)
		if err := sched.Start(cfg.Cron.Spec); err != nil {
			log.Fatalf("调度器启动失败: %v", err)
		}
		defer sched.Stop()
	}

	// 初始化处理器
	authHandler := handlers.NewAuthHandler(authService)
	groupHandler := handlers.NewGroupHandler(groupService)
	questionHandler := handlers.NewQuestionHandler(questionService, answerService, redisCache)
	answerHandler := handlers.NewAnswerHandler(answerService, questionService, groupService)
	cronHandler := handlers.NewCronHandler(questionService, cfg.Cron.Secret)

	// 配置并创建 Gin 引擎
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// 设置路由
	routers.SetupRoutes(r,
		cfg,
		authHandler,
		groupHandler,
		questionHandler,
		answerHandler,
		cronHandler,
		limiter,
	)

	// 启动服务器
	zlog.Info("server starting", zap.Int("port", cfg.Server.Port))
	if err := r.Run(":" + strconv.FormatInt(int64(cfg.Server.Port), 10)); err != nil {
		log.Fatalf("启动服务器失败: %v", err)
	}
}
