package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/osint_radar/pkg/classifier"
	"github.com/iWorld-y/osint_radar/pkg/config"
	"github.com/iWorld-y/osint_radar/pkg/lexicon"
	"github.com/iWorld-y/osint_radar/pkg/logger"
	"github.com/iWorld-y/osint_radar/pkg/model"
	"github.com/iWorld-y/osint_radar/pkg/source"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger("error", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// mockFetcher 模拟来源抓取器
type mockFetcher struct {
	articles []model.Article
	err      error
}

func (m *mockFetcher) Fetch(ctx context.Context, req *source.Request) ([]model.Article, error) {
	return m.articles, m.err
}

// mockChatModel 模拟 LLM：按输入文本返回预设回复
type mockChatModel struct {
	reply func(text string) string
	err   error
	calls int
}

func (m *mockChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.reply(in[len(in)-1].Content)}, nil
}

func (m *mockChatModel) Stream(ctx context.Context, in []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func article(title string) model.Article {
	return model.Article{Title: title, Description: "", Keywords: []string{}, Tag: model.TagNews}
}

func TestFetchAll_PartialFailure(t *testing.T) {
	sources := []Source{
		{Name: "a", Fetcher: &mockFetcher{articles: []model.Article{article("a1"), article("a2")}}},
		{Name: "b", Fetcher: &mockFetcher{err: errors.New("timeout")}},
		{Name: "c", Fetcher: &mockFetcher{articles: []model.Article{article("c1")}}},
	}

	eng := New(sources, lexicon.Default(), nil, config.SearchConfig{MaxResults: 5})
	got := eng.FetchAll(context.Background(), "scam")

	if len(got) != 3 {
		t.Fatalf("FetchAll() len = %d, want 3", len(got))
	}
	// 顺序 = 配置顺序 + 来源内输出顺序
	for i, want := range []string{"a1", "a2", "c1"} {
		if got[i].Title != want {
			t.Errorf("got[%d].Title = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestFetchAll_AllFail(t *testing.T) {
	sources := []Source{
		{Name: "a", Fetcher: &mockFetcher{err: errors.New("down")}},
	}

	eng := New(sources, lexicon.Default(), nil, config.SearchConfig{})
	if got := eng.FetchAll(context.Background(), "scam"); len(got) != 0 {
		t.Errorf("FetchAll() = %v, want empty", got)
	}
}

func TestCategorize_HarmfulDerivation(t *testing.T) {
	cm := &mockChatModel{reply: func(text string) string {
		if strings.Contains(text, "scam") {
			return "SENTIMENT=negative2 INTENT=harmful2 REASON=scam indicators"
		}
		return "SENTIMENT=neutral INTENT=harmless1 REASON=ordinary news"
	}}

	eng := New(nil, lexicon.Default(), classifier.NewWithModel(cm), config.SearchConfig{})

	in := []model.Article{
		{Title: "New scam alert", Description: "a fraud ring", Keywords: []string{}, Tag: model.TagNews},
		{Title: "Local festival", Description: "a happy day", Keywords: []string{}, Tag: model.TagNews},
	}
	out := eng.Categorize(context.Background(), in)

	if len(out) != 2 {
		t.Fatalf("Categorize() len = %d, want 2", len(out))
	}
	if !out[0].Harmful {
		t.Error("out[0].Harmful = false, want true")
	}
	if got := out[0].HarmfulWords; len(got) != 2 || got[0] != "fraud" || got[1] != "scam" {
		t.Errorf("out[0].HarmfulWords = %v, want [fraud scam]", got)
	}
	if out[0].Classification.Sentiment != "negative2" || out[0].Classification.Reason != "scam indicators" {
		t.Errorf("out[0].Classification = %+v", out[0].Classification)
	}

	if out[1].Harmful {
		t.Error("out[1].Harmful = true, want false")
	}
	if len(out[1].HarmfulWords) != 0 {
		t.Errorf("out[1].HarmfulWords = %v, want empty", out[1].HarmfulWords)
	}
	if cm.calls != 2 {
		t.Errorf("LLM calls = %d, want 每篇一次", cm.calls)
	}
}

// 词表命中永不单独决定有害标志
func TestCategorize_LexiconIsAdvisoryOnly(t *testing.T) {
	cm := &mockChatModel{reply: func(string) string {
		return "SENTIMENT=negative1 INTENT=harmless2 REASON=reported scam but informative"
	}}

	eng := New(nil, lexicon.Default(), classifier.NewWithModel(cm), config.SearchConfig{})

	out := eng.Categorize(context.Background(), []model.Article{
		{Title: "scam bomb attack", Description: "kill murder", Keywords: []string{}, Tag: model.TagNews},
	})

	if len(out[0].HarmfulWords) == 0 {
		t.Fatal("HarmfulWords 应有命中")
	}
	if out[0].Harmful {
		t.Error("Harmful = true：词表命中不得翻转标志")
	}
}

func TestCategorize_ClassifierError(t *testing.T) {
	cm := &mockChatModel{err: errors.New("service unavailable")}

	eng := New(nil, lexicon.Default(), classifier.NewWithModel(cm), config.SearchConfig{})

	out := eng.Categorize(context.Background(), []model.Article{
		{Title: "scam news", Description: "", Keywords: []string{}, Tag: model.TagNews},
	})

	c := out[0].Classification
	if c.Sentiment != "" || c.Intent != "" || c.Reason != "" {
		t.Errorf("Classification = %+v, want 全空字段", c)
	}
	if !strings.HasPrefix(c.Raw, "[LLM API error:") {
		t.Errorf("Raw = %q, want 错误占位文本", c.Raw)
	}
	if out[0].Harmful {
		t.Error("Harmful = true, want 降级为非有害")
	}
}

func TestCategorize_KeywordSubstringRule(t *testing.T) {
	cm := &mockChatModel{reply: func(string) string {
		return "SENTIMENT=neutral INTENT=harmless1 REASON=ok"
	}}

	eng := New(nil, lexicon.Default(), classifier.NewWithModel(cm), config.SearchConfig{})

	// 标题/描述无命中，关键词 "scammer" 按子串规则命中 "scam"
	out := eng.Categorize(context.Background(), []model.Article{
		{Title: "quiet day", Description: "nothing", Keywords: []string{"scammer"}, Tag: model.TagNews},
	})

	if got := out[0].HarmfulWords; len(got) != 1 || got[0] != "scam" {
		t.Errorf("HarmfulWords = %v, want [scam]", got)
	}
}

func TestRun_EmptyQuery(t *testing.T) {
	eng := New(nil, lexicon.Default(), nil, config.SearchConfig{})
	if _, err := eng.Run(context.Background(), "  "); err == nil {
		t.Fatal("Run() error = nil, want non-nil")
	}
}

func TestRun_NoArticles(t *testing.T) {
	sources := []Source{
		{Name: "a", Fetcher: &mockFetcher{err: fmt.Errorf("down")}},
	}
	eng := New(sources, lexicon.Default(), nil, config.SearchConfig{})

	got, err := eng.Run(context.Background(), "scam")
	if err != nil {
		t.Fatalf("Run() error = %v，空结果不是错误", err)
	}
	if len(got) != 0 {
		t.Errorf("Run() = %v, want empty", got)
	}
}
