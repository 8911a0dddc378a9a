package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// APIConfig REST 数据源配置
type APIConfig struct {
	BaseURL string        `yaml:"base_url"` // 快照接口基地址
	Timeout time.Duration `yaml:"timeout"`  // 单次请求超时
}

// RealtimeConfig 推送通道配置
// URL 为空表示不启用实时通道（合法配置，同步器只靠快照运行）
type RealtimeConfig struct {
	URL               string        `yaml:"url"`                // WebSocket 地址
	ReconnectInterval time.Duration `yaml:"reconnect_interval"` // 固定重连间隔
}

// StatusConfig 本地状态服务配置
type StatusConfig struct {
	Addr string `yaml:"addr"` // 监听地址（如 127.0.0.1:8090），为空则不启动
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// FallbackConfig 降级数据配置
type FallbackConfig struct {
	Seed int64 `yaml:"seed"` // 确定性数据种子
}

// Config 应用配置
type Config struct {
	API      APIConfig      `yaml:"api"`
	Realtime RealtimeConfig `yaml:"realtime"`
	Status   StatusConfig   `yaml:"status"`
	Log      LogConfig      `yaml:"log"`
	Fallback FallbackConfig `yaml:"fallback"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:8000/api/v1",
			Timeout: 30 * time.Second,
		},
		Realtime: RealtimeConfig{
			ReconnectInterval: 5 * time.Second,
		},
		Status: StatusConfig{
			Addr: "",
		},
		Log: LogConfig{
			Level:      "info",
			File:       "logs/godash.log",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
		Fallback: FallbackConfig{
			Seed: 20240115,
		},
	}
}

// Load 加载配置：默认值 <- YAML 文件 <- 环境变量
// .env 文件若存在会先被加载进环境
func Load(path string) (*Config, error) {
	// .env 不存在不算错误
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides 应用环境变量覆盖
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GODASH_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("GODASH_WS_URL"); v != "" {
		cfg.Realtime.URL = v
	}
	if v := os.Getenv("GODASH_STATUS_ADDR"); v != "" {
		cfg.Status.Addr = v
	}
	if v := os.Getenv("GODASH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url 不能为空")
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.Realtime.ReconnectInterval <= 0 {
		c.Realtime.ReconnectInterval = 5 * time.Second
	}
	return nil
}
