package source

import (
	"context"
	"time"

	"github.com/iWorld-y/osint_radar/pkg/model"
)

// RequestTimeout 单次抓取请求的超时时间
const RequestTimeout = 15 * time.Second

// Fetcher 定义通用的来源抓取接口：
// 发起一次请求并返回规范化后的文章列表
type Fetcher interface {
	Fetch(ctx context.Context, req *Request) ([]model.Article, error)
}

// Request 通用抓取请求
type Request struct {
	Query      string
	Language   string
	Country    string
	MaxResults int
}
