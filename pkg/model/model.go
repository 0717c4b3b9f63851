package model

// SourceTag 标记文章的后处理类别
type SourceTag string

const (
	// TagSearchResult 普通检索结果（无发布时间、无关键词）
	TagSearchResult SourceTag = "search_result"
	// TagNews 新闻类结果（关键词匹配等后处理仅对其有意义）
	TagNews SourceTag = "news"
)

// Classification LLM 分类结果
type Classification struct {
	Sentiment string `json:"sentiment"` // 情感标签，如 negative2
	Intent    string `json:"intent"`    // 意图标签，如 harmful1
	Reason    string `json:"reason"`    // 简短理由
	Raw       string `json:"raw"`       // LLM 原始回复（或错误占位文本）
}

// Article 规范化后的文章记录，贯穿整条流水线
type Article struct {
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"` // 纯文本，永不为 null
	Link        string    `json:"link"`
	PubDate     string    `json:"pub_date"` // 保留提供方原始格式，不做归一化
	Keywords    []string  `json:"keywords"` // 永不为 null，可为空
	Tag         SourceTag `json:"type"`
	Content     string    `json:"content,omitempty"` // 可选的正文全文，仅用于导出

	// 以下字段由分类阶段填写
	Harmful        bool           `json:"harmful"`
	HarmfulWords   []string       `json:"harmful_words"` // 本地词表命中，仅作参考
	Classification Classification `json:"classification"`
}
