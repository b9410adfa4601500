// =============================================================================
// 📦 Sailor 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

import "time"

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Slack:     DefaultSlackConfig(),
		Redis:     DefaultRedisConfig(),
		Providers: DefaultProvidersConfig(),
		Server:    DefaultServerConfig(),
		Log:       DefaultLogConfig(),
		Telemetry: DefaultTelemetryConfig(),
	}
}

// DefaultSlackConfig 返回默认 Slack 配置
func DefaultSlackConfig() SlackConfig {
	return SlackConfig{
		BotToken: "",
		AppToken: "",
		Debug:    false,
	}
}

// DefaultRedisConfig 返回默认 Redis 配置。
// Addr 默认为空：未显式配置时状态存储被禁用。
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:                "",
		Password:            "",
		DB:                  0,
		PoolSize:            10,
		MinIdleConns:        2,
		StateTTL:            0,
		HealthCheckInterval: 30 * time.Second,
	}
}

// DefaultProvidersConfig 返回默认模型目录配置
func DefaultProvidersConfig() ProvidersConfig {
	return ProvidersConfig{
		Default: "openai",
	}
}

// DefaultServerConfig 返回默认运行时服务配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		MetricsAddr:     ":9091",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		// views.publish 属于 Slack Tier 4（~100 req/min）
		PublishRateLimit: 1.5,
		PublishBurst:     5,
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "sailor",
		SampleRate:   1.0,
	}
}
