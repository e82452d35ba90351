package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gopher0727/DailyQ/internal/services"
)

// GroupHandler 组处理器
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler 创建组处理器实例
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// CreateGroup 创建组
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("CreateGroup: JSON binding error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	group, err := h.groupService.CreateGroup(userID.(uint), &req)
	if err != nil {
		log.Printf("CreateGroup: service error for userID %v: %v", userID, err)
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    group,
	})
}

// JoinGroup 通过邀请码加入组
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	var req services.JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("JoinGroup: JSON binding error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	group, err := h.groupService.JoinGroup(userID.(uint), &req)
	if err != nil {
		log.Printf("JoinGroup: service error for userID %v: %v", userID, err)
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "join group success",
		"data":    group,
	})
}

// GetMyGroups 获取我加入的组列表
func (h *GroupHandler) GetMyGroups(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	groups, err := h.groupService.ListMyGroups(userID.(uint))
	if err != nil {
		log.Printf("GetMyGroups: service error for userID %v: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"groups": groups},
	})
}

// LeaveGroup 退出组
func (h *GroupHandler) LeaveGroup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Printf("LeaveGroup: invalid group id: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid group id",
		})
		return
	}

	if err := h.groupService.LeaveGroup(userID.(uint), uint(groupID)); err != nil {
		log.Printf("LeaveGroup: service error for userID %v, groupID %v: %v", userID, groupID, err)
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "leave group success",
		"data":    nil,
	})
}

// RenameGroup 改组名，仅组主可操作
func (h *GroupHandler) RenameGroup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Printf("RenameGroup: invalid group id: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid group id",
		})
		return
	}

	var req services.RenameGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("RenameGroup: JSON binding error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if err := h.groupService.RenameGroup(userID.(uint), uint(groupID), &req); err != nil {
		log.Printf("RenameGroup: service error for userID %v, groupID %v: %v", userID, groupID, err)
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "rename group success",
		"data":    nil,
	})
}

// DeleteGroup 删组，仅组主可操作
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Printf("DeleteGroup: invalid group id: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid group id",
		})
		return
	}

	if err := h.groupService.DeleteGroup(userID.(uint), uint(groupID)); err != nil {
		log.Printf("DeleteGroup: service error for userID %v, groupID %v: %v", userID, groupID, err)
		c.JSON(statusForError(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "delete group success",
		"data":    nil,
	})
}

// GetGroupMembers 获取组成员列表
func (h *GroupHandler) GetGroupMembers(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "unauthorized",
		})
		return
	}

	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Printf("GetGroupMembers: invalid group id: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid group id",
		})
		return
	}

	// 只有组成员能看成员列表
	if !h.groupService.IsMember(uint(groupID), userID.(uint)) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "not a group member",
		})
		return
	}

	members, err := h.groupService.ListMembers(uint(groupID))
	if err != nil {
		log.Printf("GetGroupMembers: service error for groupID %v: %v", groupID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"members": members},
	})
}
