package newsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/iWorld-y/osint_radar/pkg/logger"
	"github.com/iWorld-y/osint_radar/pkg/model"
	"github.com/iWorld-y/osint_radar/pkg/source"
)

const defaultBaseURL = "https://newsdata.io/api/1/latest"

// statusSuccess 响应体级别的成功标记
const statusSuccess = "success"

// fallbackSource 无法从结果中取得来源名时的兜底值
const fallbackSource = "NewsData.io"

// Client NewsData.io 客户端
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient 创建一个新的 NewsData.io 客户端
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

// Response NewsData.io latest 响应
type Response struct {
	Status  string   `json:"status"`
	Results []Result `json:"results"`
}

// Result 单条结果
type Result struct {
	SourceID    string   `json:"source_id"`
	SourceName  string   `json:"source_name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	PubDate     string   `json:"pubDate"`
	Keywords    []string `json:"keywords"`
}

// Fetch implements source.Fetcher
func (c *Client) Fetch(ctx context.Context, req *source.Request) ([]model.Article, error) {
	resp, err := c.doSearch(ctx, req)
	if err != nil {
		return nil, err
	}

	// 响应体自带状态字段：非 success 视为提供方级失败，告警后丢弃本来源结果
	if resp.Status != statusSuccess {
		logger.Log.Warnf("NewsData.io 返回非 success 状态: %s", resp.Status)
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
	q.Set("country", req.Country)
	q.Set("apikey", c.apiKey)
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
		return nil, fmt.Errorf("newsdata api error (status %d): %s", res.StatusCode, string(body))
	}

	var dataResp Response
	if err := json.NewDecoder(res.Body).Decode(&dataResp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	return &dataResp, nil
}

// Normalize 将 NewsData.io 响应映射为规范化文章列表。纯函数，无 I/O。
// 来源名按 source_id -> source_name -> 兜底值的顺序取值；
// keywords 缺失时写入空序列，绝不输出 null。
func Normalize(resp *Response) []model.Article {
	articles := make([]model.Article, 0, len(resp.Results))
	for _, item := range resp.Results {
		src := item.SourceID
		if src == "" {
			src = item.SourceName
		}
		if src == "" {
			src = fallbackSource
		}
		keywords := item.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		articles = append(articles, model.Article{
			Source:      src,
			Title:       item.Title,
			Description: item.Description,
			Link:        item.Link,
			PubDate:     item.PubDate,
			Keywords:    keywords,
			Tag:         model.TagNews,
		})
	}
	return articles
}
