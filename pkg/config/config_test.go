package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaults 测试配置默认值
func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.API.BaseURL == "" {
		t.Error("默认 api.base_url 不应为空")
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("默认超时应为 30s，实际 %v", cfg.API.Timeout)
	}
	if cfg.Realtime.ReconnectInterval != 5*time.Second {
		t.Errorf("默认重连间隔应为 5s，实际 %v", cfg.Realtime.ReconnectInterval)
	}
	if cfg.Realtime.URL != "" {
		t.Error("默认不应配置推送端地址")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("默认配置应通过校验: %v", err)
	}
}

// TestLoadFromYAML YAML 文件覆盖默认值
func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: https://api.example.com/v1
  timeout: 10s
realtime:
  url: wss://push.example.com/stream
  reconnect_interval: 3s
status:
  addr: 127.0.0.1:8090
fallback:
  seed: 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入测试配置失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.API.BaseURL != "https://api.example.com/v1" {
		t.Errorf("base_url 未被覆盖: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("timeout 未被覆盖: %v", cfg.API.Timeout)
	}
	if cfg.Realtime.URL != "wss://push.example.com/stream" {
		t.Errorf("推送端地址未被覆盖: %s", cfg.Realtime.URL)
	}
	if cfg.Fallback.Seed != 7 {
		t.Errorf("降级种子未被覆盖: %d", cfg.Fallback.Seed)
	}
}

// TestEnvOverrides 环境变量优先于 YAML
func TestEnvOverrides(t *testing.T) {
	t.Setenv("GODASH_API_URL", "https://env.example.com")
	t.Setenv("GODASH_WS_URL", "wss://env.example.com/ws")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.API.BaseURL != "https://env.example.com" {
		t.Errorf("环境变量应覆盖 base_url，实际 %s", cfg.API.BaseURL)
	}
	if cfg.Realtime.URL != "wss://env.example.com/ws" {
		t.Errorf("环境变量应覆盖推送端地址，实际 %s", cfg.Realtime.URL)
	}
}

// TestValidate 非法配置被修正或拒绝
func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("空 base_url 应校验失败")
	}

	cfg = Default()
	cfg.API.Timeout = -1
	cfg.Realtime.ReconnectInterval = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("非正值应被修正而不是报错: %v", err)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("非正超时应回退默认值，实际 %v", cfg.API.Timeout)
	}
	if cfg.Realtime.ReconnectInterval != 5*time.Second {
		t.Errorf("非正重连间隔应回退默认值，实际 %v", cfg.Realtime.ReconnectInterval)
	}
}
