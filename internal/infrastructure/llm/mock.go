package llm

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/DanieelRC/LegislaBot/internal/domain/service"
)

//go:embed mockdata/*.txt
var mockFS embed.FS

const (
	// MockModel 离线桩的模型名
	MockModel = "mock"

	mockResearchSubject = "regulación de IA"
	mockBillSubject     = "SISTEMAS DE INTELIGENCIA ARTIFICIAL"
)

// MockGenerator 不访问网络的 TextGenerator，按阶段返回固定的西语文本，
// 并把主题替换进去。token 数按每 4 个字符 1 个估算。
type MockGenerator struct {
	templates map[service.Stage]string
}

// NewMockGenerator 加载内嵌模板
func NewMockGenerator() (*MockGenerator, error) {
	files := map[service.Stage]string{
		service.StageResearch: "mockdata/research.txt",
		service.StageDraft:    "mockdata/draft.txt",
		service.StageRefine:   "mockdata/refinement.txt",
	}
	g := &MockGenerator{templates: make(map[service.Stage]string, len(files))}
	for stage, name := range files {
		b, err := mockFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read mock template %s: %w", name, err)
		}
		g.templates[stage] = string(b)
	}
	return g, nil
}

// Generate 阶段与主题都从 context 读取
func (g *MockGenerator) Generate(ctx context.Context, req service.GenerateRequest) (*service.GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stage := service.Stage(service.StageFromContext(ctx))
	text, ok := g.templates[stage]
	if !ok {
		return nil, fmt.Errorf("mock generator has no template for stage %q", stage)
	}

	if topic := service.TopicFromContext(ctx); topic != "" {
		if stage == service.StageResearch {
			text = strings.Replace(text, mockResearchSubject, "regulación de "+topic, 1)
		} else {
			text = strings.Replace(text, mockBillSubject, strings.ToUpper(topic), 1)
		}
	}

	tokens := (utf8.RuneCountInString(req.Prompt) + utf8.RuneCountInString(req.System) + utf8.RuneCountInString(text)) / 4
	if req.MaxTokens != nil && *req.MaxTokens > 0 && tokens > *req.MaxTokens {
		tokens = *req.MaxTokens
	}
	return &service.GenerateResult{Text: strings.TrimSpace(text), TokensUsed: tokens}, nil
}

func (g *MockGenerator) Model() string { return MockModel }
