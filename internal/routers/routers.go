package routers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/DailyQ/config"
	"github.com/Gopher0727/DailyQ/internal/handlers"
	"github.com/Gopher0727/DailyQ/internal/middlewares"
	pkgmiddlewares "github.com/Gopher0727/DailyQ/pkg/middlewares"
	"github.com/Gopher0727/DailyQ/utils/ratelimit"
)

// SetupRoutes 设置所有路由
func SetupRoutes(r *gin.Engine, cfg *config.Config,
	authHandler *handlers.AuthHandler,
	groupHandler *handlers.GroupHandler,
	questionHandler *handlers.QuestionHandler,
	answerHandler *handlers.AnswerHandler,
	cronHandler *handlers.CronHandler,
	limiter ratelimit.Limiter,
) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 全局并发上限，超出返回 503
	if cfg.RateLimit.MaxConcurrency > 0 {
		r.Use(pkgmiddlewares.MaxConcurrencyMiddleware(cfg.RateLimit.MaxConcurrency))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Status": "OK",
		})
	})

	// 外部调度器入口，走共享密钥不走 JWT
	r.GET("/api/cron/daily-question", cronHandler.EnsureDailyQuestion)

	registerAuthRoutes(r, cfg, authHandler, limiter)
	registerGroupRoutes(r, groupHandler)
	registerQuestionRoutes(r, questionHandler)
	registerAnswerRoutes(r, answerHandler)
}

func registerAuthRoutes(r *gin.Engine, cfg *config.Config, authHandler *handlers.AuthHandler, limiter ratelimit.Limiter) {
	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	authGroup := r.Group("/api/v1/auth")
	// 注册登录按 IP 限流，挡住撞库和刷号
	authGroup.Use(pkgmiddlewares.RateLimitMiddleware(limiter, "auth", cfg.RateLimit.Limit, window))
	{
		authGroup.POST("/register", authHandler.Register) // 注册
		authGroup.POST("/login", authHandler.Login)       // 登录
	}

	userGroup := r.Group("/api/v1/users")
	userGroup.Use(middlewares.AuthMiddleware())
	{
		userGroup.GET("/me", authHandler.GetProfile)    // 获取当前用户信息
		userGroup.PUT("/me", authHandler.UpdateProfile) // 更新昵称、头像
	}
}

func registerGroupRoutes(r *gin.Engine, groupHandler *handlers.GroupHandler) {
	groupGroup := r.Group("/api/v1/groups")
	groupGroup.Use(middlewares.AuthMiddleware())
	{
		groupGroup.POST("", groupHandler.CreateGroup)                // 创建组
		groupGroup.POST("/join", groupHandler.JoinGroup)             // 通过邀请码加入
		groupGroup.GET("/mine", groupHandler.GetMyGroups)            // 我的组列表
		groupGroup.POST("/:id/leave", groupHandler.LeaveGroup)       // 退出组
		groupGroup.PATCH("/:id", groupHandler.RenameGroup)           // 改组名
		groupGroup.DELETE("/:id", groupHandler.DeleteGroup)          // 删组
		groupGroup.GET("/:id/members", groupHandler.GetGroupMembers) // 成员列表
	}
}

func registerQuestionRoutes(r *gin.Engine, questionHandler *handlers.QuestionHandler) {
	questionGroup := r.Group("/api/v1/questions")
	questionGroup.Use(middlewares.AuthMiddleware())
	{
		questionGroup.GET("/today", questionHandler.GetToday) // 今日问题 + 我的答案 + 倒计时
	}
}

func registerAnswerRoutes(r *gin.Engine, answerHandler *handlers.AnswerHandler) {
	answerGroup := r.Group("/api/v1/answers")
	answerGroup.Use(middlewares.AuthMiddleware())
	{
		answerGroup.POST("", answerHandler.SubmitAnswer)          // 提交/编辑答案
		answerGroup.GET("/group", answerHandler.GetGroupAnswers)  // 组员答案（揭晓门之后）
		answerGroup.GET("/timeline", answerHandler.GetMyTimeline) // 我的时间线
	}
}
