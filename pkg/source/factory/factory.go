package factory

import (
	"fmt"

	"github.com/iWorld-y/osint_radar/pkg/config"
	"github.com/iWorld-y/osint_radar/pkg/source"
	"github.com/iWorld-y/osint_radar/pkg/source/newsapi"
	"github.com/iWorld-y/osint_radar/pkg/source/newsdata"
	"github.com/iWorld-y/osint_radar/pkg/source/rssfeed"
	"github.com/iWorld-y/osint_radar/pkg/source/wikipedia"
)

// NewFetcher 根据来源配置创建抓取实例
func NewFetcher(cfg config.SourceConfig) (source.Fetcher, error) {
	switch cfg.Kind {
	case config.SourceWikipedia:
		return wikipedia.NewClient(cfg.BaseURL), nil

	case config.SourceNewsAPI:
		if cfg.Credential == "" {
			return nil, fmt.Errorf("newsapi credential is missing")
		}
		return newsapi.NewClient(cfg.BaseURL, cfg.Credential), nil

	case config.SourceNewsData:
		if cfg.Credential == "" {
			return nil, fmt.Errorf("newsdata credential is missing")
		}
		return newsdata.NewClient(cfg.BaseURL, cfg.Credential), nil

	case config.SourceRSS:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("rss feed url is missing")
		}
		return rssfeed.NewClient(cfg.Name, cfg.BaseURL), nil

	default:
		return nil, fmt.Errorf("unknown source kind: %s", cfg.Kind)
	}
}
