package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr     string
	Port           string
	StorageDriver  string
	DatabasePath   string
	DatabaseURL    string
	LocalStorePath string
	SessionSecret  string
	GinMode        string
	OwnerUsername  string
	OwnerPassword  string
	SiteBaseURL    string
	LogFile        string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 未指定 STORAGE_DRIVER 时：配置了 DATABASE_URL 使用 postgres，否则使用 sqlite。
func Load() AppConfig {
	port := env("PORT", "8080")
	listenAddr := env("LISTEN_ADDR", fmt.Sprintf(":%s", port))
	databaseURL := env("DATABASE_URL", "")

	defaultDriver := "sqlite"
	if databaseURL != "" {
		defaultDriver = "postgres"
	}

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		StorageDriver:  strings.ToLower(env("STORAGE_DRIVER", defaultDriver)),
		DatabasePath:   env("DATABASE_PATH", "portfolio.db"),
		DatabaseURL:    databaseURL,
		LocalStorePath: env("LOCAL_STORE_PATH", "data/roadmap.json"),
		SessionSecret:  env("SESSION_SECRET", "portfolio-dev-secret"),
		GinMode:        env("GIN_MODE", "release"),
		OwnerUsername:  env("OWNER_USERNAME", ""),
		OwnerPassword:  env("OWNER_PASSWORD", ""),
		SiteBaseURL:    strings.TrimRight(env("SITE_BASE_URL", "http://localhost:8080"), "/"),
		LogFile:        env("LOG_FILE", ""),
	}
}

// DSN 返回当前存储驱动对应的连接串
func (c AppConfig) DSN() string {
	if c.StorageDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DatabasePath
}

func env(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
