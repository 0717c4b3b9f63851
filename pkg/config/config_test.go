package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validConfig = `
llm:
  base_url: "https://llm.example.com/v1"
  api_key: "llm-key"
  model: "test-model"
sources:
  - name: "Wikipedia"
    kind: "wikipedia"
  - name: "NewsAPI"
    kind: "newsapi"
    credential: "file-key"
search:
  language: "en"
  country: "my"
  max_results: 5
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if len(cfg.Sources) != 2 {
		t.Fatalf("Sources len = %d, want 2", len(cfg.Sources))
	}
	if cfg.Sources[1].Credential != "file-key" {
		t.Errorf("Credential = %q", cfg.Sources[1].Credential)
	}
	if cfg.Report.JSONFile == "" || cfg.Log.Level == "" {
		t.Error("默认值未填充")
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv(EnvNewsAPIKey, "env-key")
	t.Setenv(EnvLLMAPIKey, "env-llm-key")

	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Sources[1].Credential != "env-key" {
		t.Errorf("Credential = %q, 环境变量应覆盖配置文件", cfg.Sources[1].Credential)
	}
	if cfg.LLM.APIKey != "env-llm-key" {
		t.Errorf("LLM.APIKey = %q", cfg.LLM.APIKey)
	}
}

// 缺失凭证必须在启动时报错，绝无内置默认值回退
func TestLoadConfig_MissingCredential(t *testing.T) {
	const noCred = `
llm:
  api_key: "llm-key"
  model: "test-model"
sources:
  - name: "NewsData.io"
    kind: "newsdata"
`
	if _, err := LoadConfig(writeConfig(t, noCred)); err == nil {
		t.Fatal("LoadConfig() error = nil, want 凭证缺失错误")
	}
}

func TestLoadConfig_MissingLLMKey(t *testing.T) {
	const noLLM = `
llm:
  model: "test-model"
sources:
  - name: "Wikipedia"
    kind: "wikipedia"
`
	if _, err := LoadConfig(writeConfig(t, noLLM)); err == nil {
		t.Fatal("LoadConfig() error = nil, want llm.api_key 缺失错误")
	}
}

func TestLoadConfig_UnknownKind(t *testing.T) {
	const badKind = `
llm:
  api_key: "llm-key"
  model: "test-model"
sources:
  - name: "x"
    kind: "gopher"
`
	if _, err := LoadConfig(writeConfig(t, badKind)); err == nil {
		t.Fatal("LoadConfig() error = nil, want 未知来源类型错误")
	}
}
