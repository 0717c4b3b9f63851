package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 各来源类型标识
const (
	SourceWikipedia = "wikipedia"
	SourceNewsAPI   = "newsapi"
	SourceNewsData  = "newsdata"
	SourceRSS       = "rss"
)

// 凭证环境变量（优先于配置文件中的值）
const (
	EnvNewsAPIKey  = "NEWSAPI_KEY"
	EnvNewsDataKey = "NEWSDATA_KEY"
	EnvLLMAPIKey   = "LLM_API_KEY"
)

// Config 项目配置结构体
type Config struct {
	LLM     LLMConfig      `yaml:"llm"`
	Sources []SourceConfig `yaml:"sources"`
	Search  SearchConfig   `yaml:"search"`
	Lexicon []string       `yaml:"lexicon"` // 为空则使用内置词表
	Report  ReportConfig   `yaml:"report"`
	Log     LogConfig      `yaml:"log"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// SourceConfig 单个数据来源的配置，启动后不可变
type SourceConfig struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"` // wikipedia / newsapi / newsdata / rss
	BaseURL    string `yaml:"base_url"`
	Credential string `yaml:"credential"`
}

// SearchConfig 检索参数
type SearchConfig struct {
	Language     string `yaml:"language"`
	Country      string `yaml:"country"`
	MaxResults   int    `yaml:"max_results"`
	FetchContent bool   `yaml:"fetch_content"` // 是否抓取正文全文用于导出
}

// ReportConfig 报告输出配置
type ReportConfig struct {
	JSONFile string `yaml:"json_file"`
	HTMLFile string `yaml:"html_file"` // 为空则不生成 HTML 报告
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// LoadConfig 从指定路径加载配置并完成校验
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Search.Language == "" {
		c.Search.Language = "en"
	}
	if c.Search.Country == "" {
		c.Search.Country = "my"
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 5
	}
	if c.Report.JSONFile == "" {
		c.Report.JSONFile = "news_osint_results.json"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// applyEnvOverrides 环境变量中的凭证覆盖配置文件中的值
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLLMAPIKey); v != "" {
		c.LLM.APIKey = v
	}
	for i := range c.Sources {
		var env string
		switch c.Sources[i].Kind {
		case SourceNewsAPI:
			env = EnvNewsAPIKey
		case SourceNewsData:
			env = EnvNewsDataKey
		default:
			continue
		}
		if v := os.Getenv(env); v != "" {
			c.Sources[i].Credential = v
		}
	}
}

// Validate 校验配置。缺失凭证是启动错误，不做任何内置默认值回退。
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("配置错误: 未设置 llm.api_key (或环境变量 %s)", EnvLLMAPIKey)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("配置错误: 未设置 llm.model")
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("配置错误: 未配置任何数据来源 (sources)")
	}

	for _, src := range c.Sources {
		switch src.Kind {
		case SourceWikipedia:
			// 无需凭证
		case SourceNewsAPI, SourceNewsData:
			if src.Credential == "" {
				return fmt.Errorf("配置错误: 来源 [%s] 缺少凭证", src.Name)
			}
		case SourceRSS:
			if src.BaseURL == "" {
				return fmt.Errorf("配置错误: 来源 [%s] 缺少 base_url", src.Name)
			}
		default:
			return fmt.Errorf("配置错误: 来源 [%s] 的类型未知: %s", src.Name, src.Kind)
		}
	}

	return nil
}
