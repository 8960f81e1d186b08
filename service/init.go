/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、缓存、平台客户端和调度器等初始化工作
 * @architecture 分层架构 - 服务层
 * @documentReference ai_docs/activity_analyzer_req.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保所有依赖服务正常启动后才提供API服务
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres, github.com/go-redis/redis/v8
 * @refs service/activity, service/platform, service/event, service/scheduler
 */

package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"activity-service/service/activity"
	"activity-service/service/event"
	"activity-service/service/models"
	"activity-service/service/platform"
	"activity-service/service/scheduler"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB                    *gorm.DB
	Redis                 *redis.Client
	GlobalRegistry        *platform.Registry
	GlobalAppleHealth     *platform.AppleHealthClient
	GlobalStreamSource    *platform.StreamSource
	GlobalPublisher       *event.Publisher
	GlobalActivityService *activity.ActivityService
	GlobalScheduler       *scheduler.RefreshScheduler
)

func init() {
	initDatabase()
	runMigrations()
	initRedis()
	initPlatforms()
	initServices()
}

// initDatabase 初始化数据库连接
func initDatabase() {
	var dsn string

	// 优先使用DATABASE_URL环境变量
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dsn = databaseURL
	} else {
		// 使用分离的环境变量构建连接字符串
		host := getEnvWithDefault("DB_HOST", "localhost")
		port := getEnvWithDefault("DB_PORT", "5432")
		user := getEnvWithDefault("DB_USER", "postgres")
		password := getEnvWithDefault("DB_PASSWORD", "things2024")
		dbname := getEnvWithDefault("DB_NAME", "postgres")
		sslmode := getEnvWithDefault("DB_SSLMODE", "disable")
		schema := getEnvWithDefault("DB_SCHEMA", "public")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s TimeZone=Asia/Shanghai",
			host, port, user, password, dbname, sslmode, schema)
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	log.Println("开始运行数据库迁移...")

	if err := DB.AutoMigrate(&models.AnalysisRecord{}); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	log.Println("数据库表结构迁移完成")
}

// initRedis 初始化Redis客户端，连接失败时降级为无缓存模式
func initRedis() {
	addr := getEnvWithDefault("REDIS_ADDR", "localhost:6379")

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis连接失败，报告缓存已禁用: %v", err)
		return
	}

	Redis = client
	log.Println("Redis连接成功")
}

// initPlatforms 初始化平台客户端注册表
func initPlatforms() {
	GlobalRegistry = platform.NewRegistry()

	GlobalRegistry.Register(platform.NewFitbitClient(
		os.Getenv("FITBIT_CLIENT_ID"),
		os.Getenv("FITBIT_CLIENT_SECRET"),
	))
	GlobalRegistry.Register(platform.NewGarminClient())

	GlobalAppleHealth = platform.NewAppleHealthClient()
	GlobalRegistry.Register(GlobalAppleHealth)

	// MQTT实时流，仅在配置了broker地址时启用
	if broker := os.Getenv("MQTT_BROKER"); broker != "" {
		GlobalStreamSource = platform.NewStreamSource(
			broker,
			getEnvWithDefault("MQTT_CLIENT_ID", "activity-service"),
			os.Getenv("MQTT_USERNAME"),
			os.Getenv("MQTT_PASSWORD"),
		)
		if err := GlobalStreamSource.Start(); err != nil {
			log.Printf("MQTT流数据源启动失败: %v", err)
		} else {
			GlobalRegistry.Register(GlobalStreamSource)
			log.Println("MQTT流数据源已启动")
		}
	}
}

// initServices 初始化服务
func initServices() {
	var cache *activity.ReportCache
	if Redis != nil {
		cacheTTL, err := time.ParseDuration(getEnvWithDefault("REPORT_CACHE_TTL", "15m"))
		if err != nil {
			cacheTTL = 15 * time.Minute
		}
		cache = activity.NewReportCache(Redis, cacheTTL)
	}

	// Kafka事件发布，仅在配置了broker地址时启用
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		GlobalPublisher = event.NewPublisher(
			strings.Split(brokers, ","),
			getEnvWithDefault("KAFKA_TOPIC", event.DefaultTopic),
		)
		log.Println("Kafka事件发布已启用")
	}

	repo := activity.NewAnalysisRepository(DB)
	if GlobalPublisher != nil {
		GlobalActivityService = activity.NewActivityService(GlobalRegistry, repo, cache, GlobalPublisher)
	} else {
		GlobalActivityService = activity.NewActivityService(GlobalRegistry, repo, cache, nil)
	}

	// 定时刷新最近的分析报告
	cronExpr := getEnvWithDefault("REPORT_REFRESH_CRON", "0 0 2 * * *")
	GlobalScheduler = scheduler.NewRefreshScheduler(GlobalActivityService, cronExpr, 50)
	if err := GlobalScheduler.Start(); err != nil {
		log.Printf("启动报告刷新调度器失败: %v", err)
	}

	log.Println("服务初始化完成")
}
