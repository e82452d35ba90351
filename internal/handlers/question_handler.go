package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/DailyQ/internal/services"
	"github.com/Gopher0727/DailyQ/internal/timegate"
)

// dailyQuestionCache 今日问题的只读缓存，可为 nil
type dailyQuestionCache interface {
	GetDailyQuestion(ctx context.Context, date string, dest any) bool
	SetDailyQuestion(ctx context.Context, date string, value any)
}

// QuestionHandler 每日问题处理器
type QuestionHandler struct {
	questionService *services.QuestionService
	answerService   *services.AnswerService
	cache           dailyQuestionCache
}

// NewQuestionHandler 创建每日问题处理器实例
func NewQuestionHandler(questionService *services.QuestionService, answerService *services.AnswerService, cache dailyQuestionCache) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		answerService:   answerService,
		cache:           cache,
	}
}

// GetToday 获取今天的问题、我的答案和两个倒计时
func (h *QuestionHandler) GetToday(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	now := time.Now()
	date := timegate.Today(now)

	daily, err := h.lookupDaily(c, date)
	if err != nil {
		if errors.Is(err, services.ErrNoDailyQuestion) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "today's question is not ready yet",
			})
			return
		}
		log.Printf("GetToday: question lookup error for date %s: %v", date, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	myAnswer, err := h.answerService.GetMyAnswer(daily.ID, userID.(uint))
	if err != nil {
		log.Printf("GetToday: answer lookup error for userID %v: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"daily_question":    daily,
			"my_answer":         myAnswer,
			"answered":          myAnswer != nil,
			"revealed":          timegate.IsRevealed(date, now),
			"time_until_answer": timegate.TimeUntilDeadline(now),
			"time_until_reveal": timegate.TimeUntilReveal(now),
		},
	})
}

// lookupDaily today 问题缓存优先，未命中回源数据库再回填。
// 每日问题当天不变，缓存不会读到过期内容
func (h *QuestionHandler) lookupDaily(c *gin.Context, date string) (*services.DailyQuestionDTO, error) {
	if h.cache != nil {
		var cached services.DailyQuestionDTO
		if h.cache.GetDailyQuestion(c.Request.Context(), date, &cached) && cached.Question != nil {
			return &cached, nil
		}
	}

	daily, err := h.questionService.GetDailyQuestion(date)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		h.cache.SetDailyQuestion(c.Request.Context(), date, daily)
	}
	return daily, nil
}
