package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/DailyQ/internal/services"
	"github.com/Gopher0727/DailyQ/internal/timegate"
)

// AnswerHandler 答案处理器
type AnswerHandler struct {
	answerService   *services.AnswerService
	questionService *services.QuestionService
	groupService    *services.GroupService
}

// NewAnswerHandler 创建答案处理器实例
func NewAnswerHandler(answerService *services.AnswerService, questionService *services.QuestionService, groupService *services.GroupService) *AnswerHandler {
	return &AnswerHandler{
		answerService:   answerService,
		questionService: questionService,
		groupService:    groupService,
	}
}

// SubmitAnswer 提交或编辑今天的答案。
// 过了 KST 午夜当天的问题就不能再写，编辑也一样
func (h *AnswerHandler) SubmitAnswer(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("SubmitAnswer: JSON binding error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	// 只接受对今天问题的提交
	today, err := h.questionService.GetDailyQuestion(timegate.Today(time.Now()))
	if err != nil {
		if errors.Is(err, services.ErrNoDailyQuestion) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "today's question is not ready yet",
			})
			return
		}
		log.Printf("SubmitAnswer: question lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	if req.DailyQuestionID != today.ID {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "answer window for this question has closed",
		})
		return
	}

	answer, err := h.answerService.SubmitAnswer(userID.(uint), &req)
	if err != nil {
		log.Printf("SubmitAnswer: service error for userID %v: %v", userID, err)
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    answer,
	})
}

// GetGroupAnswers 获取组员对某天问题的答案。
// 揭晓门在服务端判定，时间没到就只给倒计时不给内容
func (h *AnswerHandler) GetGroupAnswers(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	now := time.Now()
	date := c.Query("date")
	if date == "" {
		date = timegate.Today(now)
	}
	if _, err := time.Parse(timegate.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid date",
		})
		return
	}

	if !timegate.IsRevealed(date, now) {
		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "answers are not revealed yet",
			"data": gin.H{
				"revealed":          false,
				"time_until_reveal": timegate.TimeUntilReveal(now),
			},
		})
		return
	}

	daily, err := h.questionService.GetDailyQuestion(date)
	if err != nil {
		if errors.Is(err, services.ErrNoDailyQuestion) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "no question for this date",
			})
			return
		}
		log.Printf("GetGroupAnswers: question lookup error for date %s: %v", date, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	groupIDs, err := h.groupService.MyGroupIDs(userID.(uint))
	if err != nil {
		log.Printf("GetGroupAnswers: group lookup error for userID %v: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	answers, err := h.answerService.ListGroupAnswers(daily.ID, userID.(uint), groupIDs)
	if err != nil {
		log.Printf("GetGroupAnswers: service error for userID %v: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"daily_question": daily,
			"revealed":       true,
			"answers":        answers,
		},
	})
}

// GetMyTimeline 获取自己的答案时间线
func (h *AnswerHandler) GetMyTimeline(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	entries, err := h.answerService.ListMyTimeline(userID.(uint))
	if err != nil {
		log.Printf("GetMyTimeline: service error for userID %v: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"entries": entries},
	})
}
