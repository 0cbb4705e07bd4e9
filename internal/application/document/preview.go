// Package document 处理生成后的法案文本：分段预览、格式校验与导出
package document

import (
	"regexp"
	"strings"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// SectionKind 段落类别
type SectionKind string

const (
	SectionTitle      SectionKind = "title"
	SectionPreamble   SectionKind = "preamble"
	SectionExposition SectionKind = "exposition"
	SectionProposal   SectionKind = "proposal"
	SectionTransitory SectionKind = "transitory"
	SectionClosing    SectionKind = "closing"
)

const (
	headingExposition = "EXPOSICIÓN DE MOTIVOS"
	headingProposal   = "PROPUESTA"
)

var (
	blockSeparator = regexp.MustCompile(`\n\s*\n+`)
	articlePattern = regexp.MustCompile(`^Artículo\s+\S+`)
	closingDate    = regexp.MustCompile(`\d{1,2}\s+de\s+\p{L}+\s+de\s+\d{4}`)
)

// Section 一个逻辑章节
type Section struct {
	Kind SectionKind `json:"kind"`
	// Heading 章节标题，标题段与结尾段为空
	Heading    string   `json:"heading,omitempty"`
	Paragraphs []string `json:"paragraphs"`
	// Articles 提案章节中以 "Artículo" 开头的段落数
	Articles int `json:"articles,omitempty"`
}

// Preview 分段后的法案
type Preview struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Blocks 按空行切分文本，去掉空块
func Blocks(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := blockSeparator.Split(text, -1)
	out := make([]string, 0, len(raw))
	for _, b := range raw {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Split 把法案文本拆成标题、前言、动机说明、提案、过渡条款和结尾。
// 未识别出章节标题的文本整体作为前言返回。
func Split(text string) Preview {
	blocks := Blocks(text)
	p := Preview{Title: entity.DeriveTitle(text)}
	if len(blocks) == 0 {
		return p
	}

	closingIdx := -1
	if last := blocks[len(blocks)-1]; isClosing(last) {
		closingIdx = len(blocks) - 1
	}

	var cur *Section
	flush := func() {
		if cur != nil {
			p.Sections = append(p.Sections, *cur)
			cur = nil
		}
	}
	open := func(kind SectionKind, heading string) {
		flush()
		cur = &Section{Kind: kind, Heading: heading}
	}

	for i, block := range blocks {
		switch {
		case i == closingIdx && i > 0:
			open(SectionClosing, "")
			cur.Paragraphs = lines(block)
			flush()
			continue
		case i == 0 && isTitleBlock(block):
			p.Sections = append(p.Sections, Section{Kind: SectionTitle, Paragraphs: lines(block)})
			continue
		}

		heading, rest := splitHeading(block)
		switch {
		case strings.Contains(strings.ToUpper(heading), headingExposition):
			open(SectionExposition, heading)
		case strings.Contains(strings.ToUpper(heading), "TRANSITORI"):
			open(SectionTransitory, heading)
		case strings.Contains(strings.ToUpper(heading), headingProposal):
			open(SectionProposal, heading)
		default:
			if cur == nil {
				open(SectionPreamble, "")
			}
			rest = lines(block)
		}

		for _, para := range rest {
			if cur.Kind == SectionProposal && articlePattern.MatchString(para) {
				cur.Articles++
			}
			cur.Paragraphs = append(cur.Paragraphs, para)
		}
	}
	flush()
	return p
}

// Section 返回第一个指定类别的章节
func (p Preview) Section(kind SectionKind) (Section, bool) {
	for _, s := range p.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// splitHeading 块的第一行是全大写时视为章节标题
func splitHeading(block string) (string, []string) {
	ls := lines(block)
	if len(ls) == 0 || !isUpper(ls[0]) {
		return "", nil
	}
	return ls[0], ls[1:]
}

func isTitleBlock(block string) bool {
	first := lines(block)[0]
	u := strings.ToUpper(first)
	if strings.Contains(u, headingExposition) || strings.Contains(u, headingProposal) {
		return false
	}
	return isUpper(first) || len([]rune(first)) < 80
}

func isClosing(block string) bool {
	return strings.Contains(block, "México") && closingDate.MatchString(block)
}

// isUpper 至少包含一个字母且没有小写字母
func isUpper(s string) bool {
	s = strings.TrimSpace(strings.Trim(s, "#* "))
	return s != "" && strings.ToUpper(s) == s && strings.ToLower(s) != s
}

func lines(block string) []string {
	var out []string
	for _, l := range strings.Split(block, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
