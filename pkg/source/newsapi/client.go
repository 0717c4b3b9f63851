package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iWorld-y/osint_radar/pkg/logger"
	"github.com/iWorld-y/osint_radar/pkg/model"
	"github.com/iWorld-y/osint_radar/pkg/source"
)

const defaultBaseURL = "https://newsapi.org/v2/everything"

// statusOK 响应体级别的成功标记
const statusOK = "ok"

// fallbackSource 无法从结果中取得来源名时的兜底值
const fallbackSource = "NewsAPI"

// Client NewsAPI 客户端
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient 创建一个新的 NewsAPI 客户端
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: source.RequestTimeout},
	}
}

// Ensure Client implements source.Fetcher
var _ source.Fetcher = (*Client)(nil)

// Response NewsAPI everything 响应
type Response struct {
	Status   string    `json:"status"`
	Total    int       `json:"totalResults"`
	Articles []Article `json:"articles"`
}

// Article NewsAPI 单条结果
type Article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// Fetch implements source.Fetcher
func (c *Client) Fetch(ctx context.Context, req *source.Request) ([]model.Article, error) {
	resp, err := c.doSearch(ctx, req)
	if err != nil {
		return nil, err
	}

	// 响应体自带状态字段：非 ok 视为提供方级失败，告警后丢弃本来源结果
	if resp.Status != statusOK {
		logger.Log.Warnf("NewsAPI 返回非 ok 状态: %s", resp.Status)
		return nil, nil
	}

	return Normalize(resp), nil
}

// doSearch 执行检索 (Internal)
func (c *Client) doSearch(ctx context.Context, req *source.Request) (*Response, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", req.Query)
	q.Set("language", req.Language)
	q.Set("pageSize", strconv.Itoa(req.MaxResults))
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", "osint-radar/1.0 (contact: you@example.com)")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("newsapi error (status %d): %s", res.StatusCode, string(body))
	}

	var newsResp Response
	if err := json.NewDecoder(res.Body).Decode(&newsResp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	return &newsResp, nil
}

// Normalize 将 NewsAPI 响应映射为规范化文章列表。纯函数，无 I/O。
// description 缺失时写入空串，绝不输出 null。
func Normalize(resp *Response) []model.Article {
	articles := make([]model.Article, 0, len(resp.Articles))
	for _, item := range resp.Articles {
		src := item.Source.Name
		if src == "" {
			src = fallbackSource
		}
		articles = append(articles, model.Article{
			Source:      src,
			Title:       item.Title,
			Description: item.Description,
			Link:        item.URL,
			PubDate:     item.PublishedAt,
			Keywords:    []string{}, // NewsAPI 不提供关键词
			Tag:         model.TagNews,
		})
	}
	return articles
}
