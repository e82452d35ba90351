package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/DailyQ/internal/services"
)

// CronHandler 外部定时任务入口
type CronHandler struct {
	questionService *services.QuestionService
	secret          string
}

// NewCronHandler 创建定时任务处理器实例
func NewCronHandler(questionService *services.QuestionService, secret string) *CronHandler {
	return &CronHandler{
		questionService: questionService,
		secret:          secret,
	}
}

// EnsureDailyQuestion 保证今天的每日问题存在。
// 共享密钥用常数时间比较；校验失败不产生任何副作用。
// 选题失败必须回非 2xx，外部调度器靠这个重试
func (h *CronHandler) EnsureDailyQuestion(c *gin.Context) {
	if !h.authorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	result, err := h.questionService.EnsureDailyQuestion(time.Now())
	if err != nil {
		log.Printf("EnsureDailyQuestion: selector error: %v", err)
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	message := "daily question already exists"
	if result.Created {
		message = "daily question created"
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": message,
		"data":    result,
	})
}

func (h *CronHandler) authorized(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(parts[1]), []byte(h.secret)) == 1
}
