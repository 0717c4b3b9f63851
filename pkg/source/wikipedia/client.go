package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"

	"github.com/iWorld-y/osint_radar/pkg/model"
	"github.com/iWorld-y/osint_radar/pkg/source"
)

const defaultBaseURL = "https://en.wikipedia.org/w/api.php"

// tagPattern 匹配 snippet 中的标记片段，整段删除而非解码
var tagPattern = regexp.MustCompile(`<.*?>`)

// Client Wikipedia 检索 API 客户端
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 Wikipedia 客户端。无需凭证。
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: source.RequestTimeout},
	}
}

// Ensure Client implements source.Fetcher
var _ source.Fetcher = (*Client)(nil)

// SearchResponse Wikipedia list=search 响应
type SearchResponse struct {
	Query struct {
		Search []SearchResult `json:"search"`
	} `json:"query"`
}

// SearchResult 单条检索结果
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"` // 含高亮标记的摘要片段
	PageID  int    `json:"pageid"`
}

// Fetch implements source.Fetcher
func (c *Client) Fetch(ctx context.Context, req *source.Request) ([]model.Article, error) {
	resp, err := c.doSearch(ctx, req)
	if err != nil {
		return nil, err
	}
	return Normalize(resp), nil
}

// doSearch 执行检索 (Internal)
func (c *Client) doSearch(ctx context.Context, req *source.Request) (*SearchResponse, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", req.Query)
	q.Set("format", "json")
	q.Set("srlimit", strconv.Itoa(req.MaxResults))
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
		return nil, fmt.Errorf("wikipedia api error (status %d): %s", res.StatusCode, string(body))
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	return &searchResp, nil
}

// Normalize 将 Wikipedia 响应映射为规范化文章列表。纯函数，无 I/O。
func Normalize(resp *SearchResponse) []model.Article {
	articles := make([]model.Article, 0, len(resp.Query.Search))
	for _, item := range resp.Query.Search {
		articles = append(articles, model.Article{
			Source:      "Wikipedia",
			Title:       item.Title,
			Description: tagPattern.ReplaceAllString(item.Snippet, ""),
			Link:        fmt.Sprintf("https://en.wikipedia.org/?curid=%d", item.PageID),
			PubDate:     "",
			Keywords:    []string{},
			Tag:         model.TagSearchResult,
		})
	}
	return articles
}
