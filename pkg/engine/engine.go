package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/osint_radar/pkg/classifier"
	"github.com/iWorld-y/osint_radar/pkg/config"
	"github.com/iWorld-y/osint_radar/pkg/lexicon"
	"github.com/iWorld-y/osint_radar/pkg/logger"
	"github.com/iWorld-y/osint_radar/pkg/model"
	"github.com/iWorld-y/osint_radar/pkg/source"
	"github.com/iWorld-y/osint_radar/pkg/source/factory"
)

// maxContentLen 正文全文的截断长度
const maxContentLen = 5000

// Source 把来源展示名与抓取器绑定
type Source struct {
	Name    string
	Fetcher source.Fetcher
}

// Engine 核心处理引擎：串行驱动抓取、检测与分类
type Engine struct {
	sources []Source
	lex     *lexicon.Lexicon
	cls     *classifier.Client
	search  config.SearchConfig
}

// New 由现成组件组装引擎，便于注入替身
func New(sources []Source, lex *lexicon.Lexicon, cls *classifier.Client, search config.SearchConfig) *Engine {
	return &Engine{
		sources: sources,
		lex:     lex,
		cls:     cls,
		search:  search,
	}
}

// NewFromConfig 按配置创建引擎实例
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Engine, error) {
	cls, err := classifier.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	lex := lexicon.Default()
	if len(cfg.Lexicon) > 0 {
		lex = lexicon.New(cfg.Lexicon)
	}

	sources := make([]Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		f, err := factory.NewFetcher(sc)
		if err != nil {
			return nil, fmt.Errorf("来源 [%s] 初始化失败: %w", sc.Name, err)
		}
		sources = append(sources, Source{Name: sc.Name, Fetcher: f})
	}

	return New(sources, lex, cls, cfg.Search), nil
}

// Run 执行一次完整流水线：抓取 -> (可选正文补全) -> 分类。
// 全部来源均无结果时返回空列表，不视为错误。
func (e *Engine) Run(ctx context.Context, query string) ([]model.Article, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty")
	}

	articles := e.FetchAll(ctx, query)
	logger.Log.Infof("共获取 %d 篇文章", len(articles))
	if len(articles) == 0 {
		return nil, nil
	}

	if e.search.FetchContent {
		e.enrichContent(articles)
	}

	return e.Categorize(ctx, articles), nil
}

// FetchAll 按配置顺序依次抓取所有来源。
// 单个来源失败只记录日志并跳过，绝不中断整批任务；
// 返回结果保持配置顺序与各来源的输出顺序。
func (e *Engine) FetchAll(ctx context.Context, query string) []model.Article {
	req := &source.Request{
		Query:      query,
		Language:   e.search.Language,
		Country:    e.search.Country,
		MaxResults: e.search.MaxResults,
	}

	var all []model.Article
	for _, s := range e.sources {
		logger.Log.Infof("正在抓取来源: %s", s.Name)

		articles, err := s.Fetcher.Fetch(ctx, req)
		if err != nil {
			logger.Log.Errorf("抓取来源失败 [%s]: %v", s.Name, err)
			continue
		}

		logger.Log.Infof("来源 [%s] 返回 %d 篇文章", s.Name, len(articles))
		all = append(all, articles...)
	}

	return all
}

// Categorize 逐篇处理：本地词表检测 -> LLM 分类 -> 就地合并结果。
// 不做批量、不做去重，每篇文章各自触发一次分类调用。
func (e *Engine) Categorize(ctx context.Context, articles []model.Article) []model.Article {
	out := make([]model.Article, 0, len(articles))

	for _, art := range articles {
		// 标题、描述走整词规则，关键词走子串规则，三路并集
		words := lexicon.Union(
			e.lex.Detect(art.Title),
			e.lex.Detect(art.Description),
			e.lex.DetectInKeywords(art.Keywords),
		)

		text := art.Title + ". " + art.Description
		raw, err := e.cls.Classify(ctx, text, strings.Join(words, ", "))
		if err != nil {
			// 占位文本已写入 raw，解析后自然降级为未分类/非有害
			logger.Log.Errorf("分类调用失败 [%s]: %v", art.Title, err)
		}

		result := classifier.Parse(raw)

		art.Classification = result
		art.Harmful = classifier.IsHarmful(result.Intent)
		if words == nil {
			words = []string{}
		}
		art.HarmfulWords = words

		out = append(out, art)
	}

	return out
}

// enrichContent 对描述过短且带链接的新闻类文章抓取可读正文，仅用于导出
func (e *Engine) enrichContent(articles []model.Article) {
	for i := range articles {
		art := &articles[i]
		if art.Tag != model.TagNews || art.Link == "" || len(art.Description) >= 500 {
			continue
		}

		parsed, err := readability.FromURL(art.Link, source.RequestTimeout)
		if err != nil {
			logger.Log.Warnf("正文抓取失败 [%s]: %v", art.Title, err)
			continue
		}

		content := strings.TrimSpace(parsed.TextContent)
		if len(content) > maxContentLen {
			content = content[:maxContentLen]
		}
		art.Content = content
	}
}
