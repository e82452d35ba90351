package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	memberCountTTL   = 5 * time.Minute
	dailyQuestionTTL = 24 * time.Hour
)

// Cache 读多写少数据的 Redis 缓存。任何 Redis 故障都降级为未命中，
// 调用方回源数据库，缓存永远不是正确性的前提
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

// New 创建缓存实例
func New(client *redis.Client, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		client: client,
		logger: logger,
	}
}

func memberCountKey(groupID uint) string {
	return fmt.Sprintf("group:%d:member_count", groupID)
}

func dailyQuestionKey(date string) string {
	return fmt.Sprintf("daily_question:%s", date)
}

// GetMemberCount 读取组成员数缓存
func (c *Cache) GetMemberCount(ctx context.Context, groupID uint) (int64, bool) {
	count, err := c.client.Get(ctx, memberCountKey(groupID)).Int64()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("member count cache read failed",
				zap.Uint("group_id", groupID),
				zap.Error(err),
			)
		}
		return 0, false
	}
	return count, true
}

// SetMemberCount 写入组成员数缓存
func (c *Cache) SetMemberCount(ctx context.Context, groupID uint, count int64) {
	if err := c.client.Set(ctx, memberCountKey(groupID), count, memberCountTTL).Err(); err != nil {
		c.logger.Warn("member count cache write failed",
			zap.Uint("group_id", groupID),
			zap.Error(err),
		)
	}
}

// InvalidateMemberCount 成员变动后失效计数缓存
func (c *Cache) InvalidateMemberCount(ctx context.Context, groupID uint) {
	if err := c.client.Del(ctx, memberCountKey(groupID)).Err(); err != nil {
		c.logger.Warn("member count cache invalidate failed",
			zap.Uint("group_id", groupID),
			zap.Error(err),
		)
	}
}

// GetDailyQuestion 读取某天的每日问题缓存，反序列化到 dest
func (c *Cache) GetDailyQuestion(ctx context.Context, date string, dest any) bool {
	data, err := c.client.Get(ctx, dailyQuestionKey(date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("daily question cache read failed",
				zap.String("date", date),
				zap.Error(err),
			)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("daily question cache decode failed",
			zap.String("date", date),
			zap.Error(err),
		)
		return false
	}
	return true
}

// SetDailyQuestion 写入某天的每日问题缓存。
// 每日问题一经落库当天不再变化，TTL 只用来兜底清理
func (c *Cache) SetDailyQuestion(ctx context.Context, date string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("daily question cache encode failed",
			zap.String("date", date),
			zap.Error(err),
		)
		return
	}
	if err := c.client.Set(ctx, dailyQuestionKey(date), data, dailyQuestionTTL).Err(); err != nil {
		c.logger.Warn("daily question cache write failed",
			zap.String("date", date),
			zap.Error(err),
		)
	}
}
