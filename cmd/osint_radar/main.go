package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/iWorld-y/osint_radar/pkg/config"
	"github.com/iWorld-y/osint_radar/pkg/engine"
	"github.com/iWorld-y/osint_radar/pkg/logger"
	"github.com/iWorld-y/osint_radar/pkg/report"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	query := flag.String("q", "", "目标关键词（留空则进入交互输入）")
	maxResults := flag.Int("n", 0, "每个来源的最大结果数（覆盖配置）")
	language := flag.String("lang", "", "目标语言代码（覆盖配置）")
	country := flag.String("country", "", "目标地区代码（覆盖配置）")
	flag.Parse()

	// 1. 加载配置（凭证缺失在这里直接失败，不做默认值回退）
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	if *maxResults > 0 {
		cfg.Search.MaxResults = *maxResults
	}
	if *language != "" {
		cfg.Search.Language = *language
	}
	if *country != "" {
		cfg.Search.Country = *country
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动 OSINT 雷达...")

	// 3. 确定关键词
	keyword := strings.TrimSpace(*query)
	if keyword == "" {
		fmt.Print("请输入目标关键词: ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			keyword = strings.TrimSpace(scanner.Text())
		}
	}
	if keyword == "" {
		logger.Log.Fatal("未提供关键词")
	}

	ctx := context.Background()

	// 4. 初始化引擎
	eng, err := engine.NewFromConfig(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	// 5. 执行流水线
	articles, err := eng.Run(ctx, keyword)
	if err != nil {
		logger.Log.Fatalf("执行失败: %v", err)
	}
	if len(articles) == 0 {
		fmt.Println("未找到任何有效文章！")
		return
	}

	// 6. 输出报告
	report.Print(os.Stdout, articles)

	if err := report.SaveJSON(cfg.Report.JSONFile, articles); err != nil {
		logger.Log.Fatalf("保存 JSON 结果失败: %v", err)
	}
	logger.Log.Infof("✅ 共 %d 条结果已保存至 %s", len(articles), cfg.Report.JSONFile)

	if cfg.Report.HTMLFile != "" {
		if err := report.SaveHTML(cfg.Report.HTMLFile, keyword, articles); err != nil {
			logger.Log.Errorf("生成 HTML 报告失败: %v", err)
		} else {
			logger.Log.Infof("✅ HTML 报告已生成: %s", cfg.Report.HTMLFile)
		}
	}
}
