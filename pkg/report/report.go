package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/iWorld-y/osint_radar/pkg/model"
)

// SaveJSON 将结果写为带缩进的 UTF-8 JSON 文件。
// 这是唯一的持久化产物，字段与 model.Article 一一对应。
func SaveJSON(path string, articles []model.Article) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(articles)
}

// Print 输出控制台报告：逐条结果，随后单列有害条目
func Print(w io.Writer, articles []model.Article) {
	fmt.Fprintln(w, "\n--- OSINT 新闻报告 ---")

	for i, art := range articles {
		fmt.Fprintf(w, "\n# HIT %d\n", i+1)
		fmt.Fprintf(w, "  标题: %s\n", art.Title)
		fmt.Fprintf(w, "  来源: %s (%s)\n", art.Source, art.PubDate)
		fmt.Fprintf(w, "  链接: %s\n", art.Link)
		fmt.Fprintf(w, "  描述: %s\n", art.Description)
		fmt.Fprintf(w, "  情感: %s\n", art.Classification.Sentiment)
		fmt.Fprintf(w, "  意图: %s\n", art.Classification.Intent)
		fmt.Fprintf(w, "  理由: %s\n", art.Classification.Reason)
		fmt.Fprintf(w, "  检出风险词: [%s]\n", strings.Join(art.HarmfulWords, ", "))
		if art.Harmful {
			fmt.Fprintln(w, "  [危险] LLM 判定为有害内容！")
		} else {
			fmt.Fprintln(w, "  [安全] LLM 未判定为有害。")
		}
	}

	fmt.Fprintln(w, "\n--- 仅有害条目 ---")
	for _, art := range articles {
		if !art.Harmful {
			continue
		}
		fmt.Fprintf(w, "\n[危险] %s\n", art.Title)
		fmt.Fprintf(w, "  来源: %s\n", art.Source)
		fmt.Fprintf(w, "  理由: %s\n", art.Classification.Reason)
	}
}

// htmlTpl 报告页面模板
const htmlTpl = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>OSINT 雷达</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; line-height: 1.6; color: #333; }
        .article { border-bottom: 1px solid #eee; padding-bottom: 20px; margin-bottom: 20px; }
        .title { font-size: 1.2em; font-weight: bold; color: #2c3e50; text-decoration: none; }
        .meta { font-size: 0.9em; color: #7f8c8d; margin-bottom: 10px; }
        .summary { background-color: #f9f9f9; padding: 15px; border-radius: 5px; border-left: 4px solid #3498db; }
        .tag { display: inline-block; padding: 2px 8px; border-radius: 12px; font-size: 0.8em; margin-right: 5px; color: white; }
        .tag-safe { background-color: #3498db; }
        .tag-danger { background-color: #e74c3c; }
        h1 { text-align: center; color: #2c3e50; }
    </style>
</head>
<body>
    <h1>🔎 OSINT 雷达</h1>
    <p style="text-align:center; color:#666;">{{ .Date }} • 关键词「{{ .Query }}」 • 共 {{ .Count }} 条结果</p>

    {{range .Articles}}
    <div class="article">
        <a href="{{.Link}}" class="title" target="_blank">{{.Title}}</a>
        <div class="meta">
            {{if .Harmful}}<span class="tag tag-danger">有害: {{.Classification.Intent}}</span>{{else}}<span class="tag tag-safe">{{.Classification.Intent}}</span>{{end}}
            来源: {{.Source}} | 时间: {{.PubDate}}
        </div>
        <div class="summary">{{.Description}}{{if .Classification.Reason}}<br><b>判定理由:</b> {{.Classification.Reason}}{{end}}</div>
    </div>
    {{end}}
</body>
</html>`

// SaveHTML 渲染 HTML 报告
func SaveHTML(path, query string, articles []model.Article) error {
	t, err := template.New("report").Parse(htmlTpl)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	data := struct {
		Date     string
		Query    string
		Count    int
		Articles []model.Article
	}{
		Date:     time.Now().Format("2006-01-02"),
		Query:    query,
		Count:    len(articles),
		Articles: articles,
	}

	return t.Execute(f, data)
}
