// Package statestore persists each Slack user's chosen AI provider/model
// pair in Redis. This package is internal and should not be imported by
// external projects.
package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// =============================================================================
// 💾 用户状态存储
// =============================================================================

// keyPrefix 用户状态键前缀
const keyPrefix = "user_state:"

// UserState 用户当前选择的 Provider 与模型
type UserState struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Store 用户状态存储
type Store struct {
	redis  *redis.Client
	config Config
	logger *zap.Logger
	mu     sync.RWMutex
	closed bool
}

// Config 存储配置
type Config struct {
	// Redis 地址
	Addr string `yaml:"addr" json:"addr"`

	// 密码
	Password string `yaml:"password" json:"password"`

	// 数据库编号
	DB int `yaml:"db" json:"db"`

	// 连接池大小
	PoolSize int `yaml:"pool_size" json:"pool_size"`

	// 最小空闲连接数
	MinIdleConns int `yaml:"min_idle_conns" json:"min_idle_conns"`

	// 状态过期时间（0 表示永不过期）
	StateTTL time.Duration `yaml:"state_ttl" json:"state_ttl"`

	// 健康检查间隔（0 表示关闭）
	HealthCheckInterval time.Duration `yaml:"health_check_interval" json:"health_check_interval"`
}

// DefaultConfig 返回默认存储配置
func DefaultConfig() Config {
	return Config{
		Addr:                "localhost:6379",
		Password:            "",
		DB:                  0,
		PoolSize:            10,
		MinIdleConns:        2,
		StateTTL:            0,
		HealthCheckInterval: 30 * time.Second,
	}
}

// New 创建用户状态存储并验证 Redis 连接
func New(config Config, logger *zap.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	s := &Store{
		redis:  client,
		config: config,
		logger: logger.With(zap.String("component", "statestore")),
	}

	// 启动健康检查
	if config.HealthCheckInterval > 0 {
		go s.healthCheckLoop()
	}

	s.logger.Info("state store initialized",
		zap.String("addr", config.Addr),
		zap.Duration("state_ttl", config.StateTTL),
	)

	return s, nil
}

// =============================================================================
// 🎯 核心方法
// =============================================================================

// Get 读取用户状态，键不存在时返回 ErrNoState
func (s *Store) Get(ctx context.Context, userID string) (UserState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return UserState{}, fmt.Errorf("state store is closed")
	}

	val, err := s.redis.Get(ctx, keyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return UserState{}, ErrNoState
	}
	if err != nil {
		s.logger.Error("state get failed", zap.String("user_id", userID), zap.Error(err))
		return UserState{}, fmt.Errorf("state get failed: %w", err)
	}

	var st UserState
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return UserState{}, fmt.Errorf("failed to unmarshal user state: %w", err)
	}

	return st, nil
}

// Set 写入用户状态，TTL 取自配置（0 表示永不过期）
func (s *Store) Set(ctx context.Context, userID string, st UserState) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return fmt.Errorf("state store is closed")
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal user state: %w", err)
	}

	if err := s.redis.Set(ctx, keyPrefix+userID, data, s.config.StateTTL).Err(); err != nil {
		s.logger.Error("state set failed", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("state set failed: %w", err)
	}

	return nil
}

// Delete 删除用户状态
func (s *Store) Delete(ctx context.Context, userID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return fmt.Errorf("state store is closed")
	}

	if err := s.redis.Del(ctx, keyPrefix+userID).Err(); err != nil {
		s.logger.Error("state delete failed", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("state delete failed: %w", err)
	}

	return nil
}

// Ping 检查 Redis 连接
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return fmt.Errorf("state store is closed")
	}

	return s.redis.Ping(ctx).Err()
}

// Close 关闭存储
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	s.logger.Info("closing state store")

	return s.redis.Close()
}

// =============================================================================
// 🏥 健康检查
// =============================================================================

// healthCheckLoop 健康检查循环
func (s *Store) healthCheckLoop() {
	ticker := time.NewTicker(s.config.HealthCheckInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		if s.closed {
			s.mu.RUnlock()
			return
		}
		s.mu.RUnlock()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.Ping(ctx); err != nil {
			s.logger.Error("state store health check failed", zap.Error(err))
		} else {
			s.logger.Debug("state store health check passed")
		}
		cancel()
	}
}

// =============================================================================
// 🔧 辅助函数
// =============================================================================

// ErrNoState 用户尚无保存的选择
var ErrNoState = errors.New("no saved user state")

// IsNoState 判断是否为"无保存状态"错误
func IsNoState(err error) bool {
	return errors.Is(err, ErrNoState)
}
