// =============================================================================
// Sailor 主入口
// =============================================================================
// Slack 机器人服务入口点，包含 Socket Mode 事件循环、健康检查、
// Prometheus 指标
//
// 使用方法:
//
//	sailor serve                       # 启动服务
//	sailor serve --config config.yaml  # 指定配置文件
//	sailor version                     # 显示版本信息
//	sailor health                      # 健康检查
// =============================================================================

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/BaSui01/sailor/config"
	"github.com/BaSui01/sailor/internal/metrics"
	"github.com/BaSui01/sailor/internal/server"
	"github.com/BaSui01/sailor/internal/statestore"
	"github.com/BaSui01/sailor/internal/telemetry"
	"github.com/BaSui01/sailor/listeners"
	"github.com/BaSui01/sailor/listeners/actions"
	"github.com/BaSui01/sailor/listeners/events"
	"github.com/BaSui01/sailor/providers"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "serve":
		runServe(os.Args[2:])
	case "version":
		printVersion()
	case "health":
		runHealthCheck(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// =============================================================================
// 🖥️ serve 命令
// =============================================================================

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file")
	fs.Parse(args)

	// 本地开发支持 .env 文件（部署环境直接使用环境变量）
	_ = godotenv.Load()

	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 验证配置
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := initLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("Starting Sailor",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Initialize OpenTelemetry
	otelProviders, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}

	collector := metrics.NewCollector("sailor", prometheus.DefaultRegisterer, logger)

	// Redis 状态存储可选：不可用时降级为无保存选择
	var store listeners.UserStateStore
	var redisStore *statestore.Store
	if cfg.StateStoreEnabled() {
		s, err := statestore.New(statestore.Config{
			Addr:                cfg.Redis.Addr,
			Password:            cfg.Redis.Password,
			DB:                  cfg.Redis.DB,
			PoolSize:            cfg.Redis.PoolSize,
			MinIdleConns:        cfg.Redis.MinIdleConns,
			StateTTL:            cfg.Redis.StateTTL,
			HealthCheckInterval: cfg.Redis.HealthCheckInterval,
		}, logger)
		if err != nil {
			logger.Warn("state store unavailable, continuing without saved selections", zap.Error(err))
		} else {
			store = s
			redisStore = s
		}
	} else {
		logger.Info("state store disabled, saved selections are off")
	}

	// 模型目录
	registry := providers.BuildCatalog(cfg.Providers)
	if registry.Len() == 0 {
		logger.Warn("model catalog is empty, check provider credentials")
	}
	logger.Info("model catalog built", zap.Strings("models", registry.List()))

	// Slack 客户端与监听器
	api := slack.New(
		cfg.Slack.BotToken,
		slack.OptionAppLevelToken(cfg.Slack.AppToken),
		slack.OptionDebug(cfg.Slack.Debug),
	)
	socketClient := socketmode.New(api, socketmode.OptionDebug(cfg.Slack.Debug))

	publisher := listeners.NewRateLimitedPublisher(api, cfg.Server.PublishRateLimit, cfg.Server.PublishBurst)
	homeHandler := events.NewAppHomeOpenedHandler(registry, store, publisher, collector, cfg.Providers.GenAIAPIURL, logger)
	selectHandler := actions.NewProviderSelectHandler(store, homeHandler, collector, logger)

	socketManager := server.NewSocketManager(socketClient, homeHandler, selectHandler, collector, logger)

	// 健康检查 / 指标 HTTP 服务
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler(redisStore))
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := server.NewManager(mux, server.Config{
		Addr:            cfg.Server.MetricsAddr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, logger)

	if err := httpServer.Start(); err != nil {
		logger.Fatal("failed to start http server", zap.Error(err))
	}

	// 信号驱动的优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return socketManager.Run(gctx)
	})
	g.Go(func() error {
		select {
		case err := <-httpServer.Err():
			return err
		case <-gctx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("runtime error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			logger.Error("state store close failed", zap.Error(err))
		}
	}
	if err := otelProviders.Shutdown(shutdownCtx); err != nil {
		logger.Warn("telemetry shutdown failed", zap.Error(err))
	}

	logger.Info("Sailor stopped")
}

// healthHandler 报告服务健康状态；状态存储启用时一并探测 Redis
func healthHandler(store *statestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				http.Error(w, "state store unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	}
}

// =============================================================================
// 🏥 健康检查命令
// =============================================================================

func runHealthCheck(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	addr := fs.String("addr", "http://localhost:9091", "Server address")
	fs.Parse(args)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(*addr + "/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Health check failed: status %d\n", resp.StatusCode)
		os.Exit(1)
	}

	fmt.Println("OK")
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion() {
	fmt.Printf("Sailor %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`Sailor - Slack AI provider picker bot

Usage:
  sailor <command> [options]

Commands:
  serve     Start the Sailor bot (Socket Mode)
  version   Show version information
  health    Check server health
  help      Show this help message

Options for 'serve':
  --config <path>   Path to configuration file (YAML)

Examples:
  sailor serve
  sailor serve --config /etc/sailor/config.yaml
  sailor health --addr http://localhost:9091
  sailor version`)
}

// =============================================================================
// 🔧 日志初始化
// =============================================================================

func initLogger(cfg config.LogConfig) *zap.Logger {
	// 解析日志级别
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	// 配置编码器
	encoding := "json"
	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoding = "console"
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !cfg.EnableCaller,
		DisableStacktrace: !cfg.EnableStacktrace,
	}

	logger, err := zapConfig.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}
