package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iWorld-y/osint_radar/pkg/model"
	"github.com/iWorld-y/osint_radar/pkg/source"
)

func TestNormalize(t *testing.T) {
	resp := &SearchResponse{}
	resp.Query.Search = []SearchResult{
		{
			Title:   "Scam",
			Snippet: `A <span class="searchmatch">scam</span> is a <b>fraud</b>`,
			PageID:  12345,
		},
	}

	articles := Normalize(resp)
	if len(articles) != 1 {
		t.Fatalf("Normalize() len = %d, want 1", len(articles))
	}

	art := articles[0]
	if art.Source != "Wikipedia" {
		t.Errorf("Source = %q", art.Source)
	}
	// 标记整段删除，不做实体解码
	if art.Description != "A scam is a fraud" {
		t.Errorf("Description = %q", art.Description)
	}
	if art.Link != "https://en.wikipedia.org/?curid=12345" {
		t.Errorf("Link = %q", art.Link)
	}
	if art.PubDate != "" {
		t.Errorf("PubDate = %q, want empty", art.PubDate)
	}
	if art.Keywords == nil || len(art.Keywords) != 0 {
		t.Errorf("Keywords = %v, want 空序列而非 nil", art.Keywords)
	}
	if art.Tag != model.TagSearchResult {
		t.Errorf("Tag = %q, want search_result", art.Tag)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("action") != "query" || q.Get("list") != "search" {
			t.Errorf("unexpected query params: %v", q)
		}
		if q.Get("srsearch") != "scam" || q.Get("srlimit") != "5" {
			t.Errorf("unexpected search params: %v", q)
		}
		w.Write([]byte(`{"query":{"search":[{"title":"Scam","snippet":"a <i>scam</i>","pageid":1}]}}`))
	}))
	defer srv.Close()

	cli := NewClient(srv.URL)
	articles, err := cli.Fetch(context.Background(), &source.Request{Query: "scam", MaxResults: 5})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(articles) != 1 || articles[0].Description != "a scam" {
		t.Errorf("Fetch() = %+v", articles)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cli := NewClient(srv.URL)
	if _, err := cli.Fetch(context.Background(), &source.Request{Query: "scam", MaxResults: 5}); err == nil {
		t.Fatal("Fetch() error = nil, want non-nil")
	}
}
