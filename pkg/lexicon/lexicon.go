package lexicon

import (
	"regexp"
	"sort"
	"strings"
)

// defaultTerms 内置的风险词表
var defaultTerms = []string{
	"scam", "fraud", "bomb", "attack", "terror", "hack", "threat",
	"arrested", "kill", "bad", "murder", "shoot",
}

// Lexicon 风险词表。进程启动时构建一次，之后只读。
// 命中结果只作为分类器的参考上下文，从不直接决定结论。
type Lexicon struct {
	terms    []string
	patterns []*regexp.Regexp
}

// New 由给定词表构建 Lexicon，词条统一转小写
func New(terms []string) *Lexicon {
	l := &Lexicon{
		terms:    make([]string, 0, len(terms)),
		patterns: make([]*regexp.Regexp, 0, len(terms)),
	}
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		l.terms = append(l.terms, term)
		// 整词匹配，大小写不敏感。边界语义依赖 \b，
		// 对变形词（如 "scammer"）不命中，对混合词可能误报，这是已知限制。
		l.patterns = append(l.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	return l
}

// Default 返回使用内置词表的 Lexicon
func Default() *Lexicon {
	return New(defaultTerms)
}

// Terms 返回词表内容（副本）
func (l *Lexicon) Terms() []string {
	out := make([]string, len(l.terms))
	copy(out, l.terms)
	return out
}

// Detect 对自由文本做整词扫描，返回去重且排序后的命中词
func (l *Lexicon) Detect(text string) []string {
	if text == "" {
		return nil
	}
	found := make(map[string]struct{})
	for i, p := range l.patterns {
		if p.MatchString(text) {
			found[l.terms[i]] = struct{}{}
		}
	}
	return sorted(found)
}

// DetectInKeywords 对关键词列表做子串扫描。
// 与自由文本的整词规则刻意不对称：关键词本身已是短语，按子串匹配更宽松。
func (l *Lexicon) DetectInKeywords(keywords []string) []string {
	found := make(map[string]struct{})
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		for _, term := range l.terms {
			if strings.Contains(lower, term) {
				found[term] = struct{}{}
			}
		}
	}
	return sorted(found)
}

// Union 合并多组命中词，返回去重且排序后的结果
func Union(sets ...[]string) []string {
	found := make(map[string]struct{})
	for _, set := range sets {
		for _, term := range set {
			found[term] = struct{}{}
		}
	}
	return sorted(found)
}

func sorted(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for term := range set {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
