package rssfeed

import (
	"context"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/iWorld-y/osint_radar/pkg/model"
	"github.com/iWorld-y/osint_radar/pkg/source"
)

// tagPattern RSS 描述中常带 HTML 片段，整段删除
var tagPattern = regexp.MustCompile(`<.*?>`)

// Client RSS 订阅源客户端
type Client struct {
	name    string
	feedURL string
	parser  *gofeed.Parser
}

// NewClient 创建一个新的 RSS 客户端。name 用作来源名的兜底值。
func NewClient(name, feedURL string) *Client {
	return &Client{
		name:    name,
		feedURL: feedURL,
		parser:  gofeed.NewParser(),
	}
}

// Ensure Client implements source.Fetcher
var _ source.Fetcher = (*Client)(nil)

// Fetch implements source.Fetcher
func (c *Client) Fetch(ctx context.Context, req *source.Request) ([]model.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, source.RequestTimeout)
	defer cancel()

	feed, err := c.parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		return nil, err
	}

	return Normalize(feed, c.name, req.MaxResults), nil
}

// Normalize 将 RSS Feed 映射为规范化文章列表。纯函数，无 I/O。
// 数量不超过 max；来源名按 feed 标题 -> 配置名的顺序取值。
func Normalize(feed *gofeed.Feed, name string, max int) []model.Article {
	src := feed.Title
	if src == "" {
		src = name
	}

	items := feed.Items
	if max > 0 && len(items) > max {
		items = items[:max]
	}

	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		keywords := item.Categories
		if keywords == nil {
			keywords = []string{}
		}
		articles = append(articles, model.Article{
			Source:      src,
			Title:       item.Title,
			Description: strings.TrimSpace(tagPattern.ReplaceAllString(item.Description, "")),
			Link:        item.Link,
			PubDate:     item.Published,
			Keywords:    keywords,
			Tag:         model.TagNews,
		})
	}
	return articles
}
