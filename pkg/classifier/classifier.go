package classifier

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/osint_radar/pkg/config"
	"github.com/iWorld-y/osint_radar/pkg/model"
)

// NoTerms 本地词表无命中时传给 LLM 的占位标记
const NoTerms = "None"

// promptTpl 固定指令模板。回复格式靠提示词约束，
// 模型仍可能偏离，解析侧必须防御性处理。
const promptTpl = `你正在分析可能有害或涉及诈骗的新闻内容。
我会提供新闻/文章内容，以及本地词表检出的风险词列表。
请完成分类：
- Sentiment: [positive1, positive2, negative1, negative2, neutral] 之一
- Intent: [harmful1, harmful2, harmless1, harmless2] 之一
标签定义：
- positive1: 轻度正面，positive2: 强烈正面。
- negative1: 轻度负面，negative2: 高度负面。
- harmful1: 含轻度威胁/诈骗迹象，harmful2: 高威胁/诈骗/严重问题。
- harmless1: 内容完全安全，harmless2: 需轻微留意但并非实际威胁。
请结合文章内容与检出的风险词作答。
务必严格按以下格式返回：
SENTIMENT={sentiment_label} INTENT={intent_label} REASON={short_reason}

文章内容: %s
风险词: %s
`

var (
	sentimentPattern = regexp.MustCompile(`SENTIMENT=([a-zA-Z0-9]+)`)
	intentPattern    = regexp.MustCompile(`INTENT=([a-zA-Z0-9]+)`)
	reasonPattern    = regexp.MustCompile(`REASON=(.*)`)
)

// Client 外部 LLM 分类客户端
type Client struct {
	cm einomodel.BaseChatModel
}

// NewClient 创建 LLM 分类客户端
func NewClient(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &Client{cm: cm}, nil
}

// NewWithModel 由已有模型实例创建客户端，便于注入替身
func NewWithModel(cm einomodel.BaseChatModel) *Client {
	return &Client{cm: cm}
}

// Classify 发起一次分类调用，返回 LLM 的原始回复文本。
// 调用失败时返回错误占位文本与非空 error：占位文本保证了
// 后续解析安全降级，error 则让调用方能区分服务故障与正常回复。
func (c *Client) Classify(ctx context.Context, text, harmWords string) (string, error) {
	if harmWords == "" {
		harmWords = NoTerms
	}

	messages := []*schema.Message{
		{Role: schema.User, Content: fmt.Sprintf(promptTpl, text, harmWords)},
	}

	resp, err := c.cm.Generate(ctx, messages)
	if err != nil {
		return fmt.Sprintf("[LLM API error: %v]", err), err
	}

	return strings.TrimSpace(resp.Content), nil
}

// Parse 从 LLM 回复中提取三个字段。
// SENTIMENT= 或 INTENT= 任一缺失（含错误占位文本）时三字段全部留空，
// 由 IsHarmful 的前缀规则自然降级为非有害。
func Parse(raw string) model.Classification {
	result := model.Classification{Raw: raw}

	if !strings.Contains(raw, "SENTIMENT=") || !strings.Contains(raw, "INTENT=") {
		return result
	}

	if m := sentimentPattern.FindStringSubmatch(raw); m != nil {
		result.Sentiment = m[1]
	}
	if m := intentPattern.FindStringSubmatch(raw); m != nil {
		result.Intent = m[1]
	}
	if m := reasonPattern.FindStringSubmatch(raw); m != nil {
		result.Reason = strings.TrimSpace(m[1])
	}

	return result
}

// IsHarmful 有害标志只由意图标签决定：以 harmful 开头即为有害
func IsHarmful(intent string) bool {
	return strings.HasPrefix(intent, "harmful")
}
