package document

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
)

// Format 导出格式
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat 解析导出格式，"markdown" 与 "text" 作为别名接受
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", apperrors.ErrInvalidParam.WithDetail(fmt.Sprintf("unsupported export format %q", s))
	}
}

// Exported 导出结果
type Exported struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export 按格式渲染法案文本。PDF 与 DOCX 由客户端生成。
func Export(text string, format Format) (*Exported, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.ErrInvalidParam.WithDetail("content is required")
	}
	preview := Split(text)
	base := filename(preview.Title)

	switch format {
	case FormatText:
		return &Exported{
			Filename:    base + ".txt",
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(strings.TrimSpace(text) + "\n"),
		}, nil
	case FormatMarkdown:
		return &Exported{
			Filename:    base + ".md",
			ContentType: "text/markdown; charset=utf-8",
			Body:        []byte(Markdown(preview)),
		}, nil
	case FormatHTML:
		body, err := renderHTML(preview)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to render html")
		}
		return &Exported{
			Filename:    base + ".html",
			ContentType: "text/html; charset=utf-8",
			Body:        body,
		}, nil
	default:
		return nil, apperrors.ErrInvalidParam.WithDetail(fmt.Sprintf("unsupported export format %q", format))
	}
}

// Markdown 章节标题转为二级标题，条文加粗条号，结尾右侧落款保持原样
func Markdown(p Preview) string {
	var b strings.Builder
	for _, s := range p.Sections {
		switch s.Kind {
		case SectionTitle:
			b.WriteString("# " + strings.Join(s.Paragraphs, " ") + "\n\n")
			continue
		case SectionClosing:
			b.WriteString("---\n\n")
		}
		if s.Heading != "" {
			b.WriteString("## " + s.Heading + "\n\n")
		}
		for _, para := range s.Paragraphs {
			if s.Kind == SectionProposal || s.Kind == SectionTransitory {
				para = emphasizeArticle(para)
			}
			b.WriteString(escapeMarkdown(para) + "\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

const htmlShell = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

func renderHTML(p Preview) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(p)), &buf); err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf(htmlShell, html.EscapeString(p.Title), buf.String())), nil
}

// emphasizeArticle 条号（如 "Artículo 1."）加粗
func emphasizeArticle(para string) string {
	m := articlePattern.FindString(para)
	if m == "" {
		return para
	}
	head := strings.TrimRight(m, ".-")
	return "**" + head + "**" + strings.TrimPrefix(para, head)
}

// escapeMarkdown 避免以数字加点或连字符开头的段落被渲染成列表
func escapeMarkdown(para string) string {
	if para == "" {
		return para
	}
	if strings.HasPrefix(para, "- ") || strings.HasPrefix(para, "+ ") || strings.HasPrefix(para, "> ") {
		return `\` + para
	}
	i := 0
	for i < len(para) && para[i] >= '0' && para[i] <= '9' {
		i++
	}
	if i > 0 && i < len(para) && (para[i] == '.' || para[i] == ')') {
		return para[:i] + `\` + para[i:]
	}
	return para
}

func filename(title string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case strings.ContainsRune("áàäâ", r):
			b.WriteRune('a')
			lastDash = false
		case strings.ContainsRune("éèëê", r):
			b.WriteRune('e')
			lastDash = false
		case strings.ContainsRune("íìïî", r):
			b.WriteRune('i')
			lastDash = false
		case strings.ContainsRune("óòöô", r):
			b.WriteRune('o')
			lastDash = false
		case strings.ContainsRune("úùüû", r):
			b.WriteRune('u')
			lastDash = false
		case r == 'ñ':
			b.WriteRune('n')
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	name := strings.Trim(b.String(), "-")
	if len(name) > 60 {
		name = strings.TrimRight(name[:60], "-")
	}
	if name == "" {
		name = "proyecto-de-ley"
	}
	return name
}
