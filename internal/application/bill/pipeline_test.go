package bill

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanieelRC/LegislaBot/internal/application/settings"
	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/service"
	"github.com/DanieelRC/LegislaBot/internal/workflow/chain"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
)

const finalBill = `LEY PARA LA REGULACIÓN DE DEEPFAKES EN LA CIUDAD DE MÉXICO

EXPOSICIÓN DE MOTIVOS

La manipulación sintética de contenido exige un marco normativo.

PROPUESTA

Artículo ÚNICO. Se expide la Ley para la Regulación de Deepfakes.

DISPOSICIONES TRANSITORIAS

PRIMERO. El presente decreto entrará en vigor al día siguiente de su publicación.

Ciudad de México, a 18 de octubre de 2026, Dip. Juan Pérez.`

// stageGenerator 按阶段返回固定文本并记录请求
type stageGenerator struct {
	model string
	texts map[string]string
	err   map[string]error

	mu    sync.Mutex
	calls map[string][]service.GenerateRequest
}

func (g *stageGenerator) Generate(ctx context.Context, req service.GenerateRequest) (*service.GenerateResult, error) {
	stage := service.StageFromContext(ctx)
	g.mu.Lock()
	if g.calls == nil {
		g.calls = map[string][]service.GenerateRequest{}
	}
	g.calls[stage] = append(g.calls[stage], req)
	g.mu.Unlock()

	if err := g.err[stage]; err != nil {
		return nil, err
	}
	return &service.GenerateResult{Text: g.texts[stage], TokensUsed: 250}, nil
}

func (g *stageGenerator) Model() string { return g.model }

func (g *stageGenerator) count(stage string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls[stage])
}

type stubFactory struct {
	gens    map[string]*stageGenerator
	noCreds bool
}

func (f *stubFactory) Get(_ context.Context, provider string) (service.TextGenerator, error) {
	if f.noCreds {
		return nil, &service.ConfigError{Provider: provider, EnvVar: strings.ToUpper(provider) + "_API_KEY"}
	}
	return f.gens[provider], nil
}

type countingRecorder struct {
	mu   sync.Mutex
	recs []service.UsageInput
}

func (r *countingRecorder) Record(_ context.Context, in service.UsageInput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, in)
}

func (r *countingRecorder) requestTypes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.recs))
	for _, rec := range r.recs {
		out = append(out, rec.RequestType)
	}
	return out
}

type staticSettings struct {
	s     service.GenerationSettings
	calls int
}

func (p *staticSettings) GetRelevantSettings(context.Context) service.GenerationSettings {
	p.calls++
	return p.s
}

// failingSettingRepo 模拟 settings 表不可用
type failingSettingRepo struct{}

func (failingSettingRepo) GetByKeys(context.Context, []string) ([]*entity.Setting, error) {
	return nil, errors.New("relation \"settings\" does not exist")
}
func (failingSettingRepo) List(context.Context) ([]*entity.Setting, error) { return nil, nil }
func (failingSettingRepo) Upsert(context.Context, *entity.Setting) error   { return nil }

type fixture struct {
	pipeline *Pipeline
	google   *stageGenerator
	openai   *stageGenerator
	factory  *stubFactory
	recorder *countingRecorder
}

func newFixture(sp service.SettingsProvider) *fixture {
	google := &stageGenerator{model: "gemini-1.5-pro", texts: map[string]string{"research": "Título de la fuente: Ley Federal de Protección de Datos"}}
	openai := &stageGenerator{model: "gpt-4o", texts: map[string]string{"draft": "BORRADOR", "refine": finalBill}}
	factory := &stubFactory{gens: map[string]*stageGenerator{"google": google, "openai": openai}}
	rec := &countingRecorder{}
	stages := chain.NewBillChain(factory, rec, chain.DefaultConfig())
	return &fixture{
		pipeline: NewPipeline(sp, stages),
		google:   google,
		openai:   openai,
		factory:  factory,
		recorder: rec,
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	sp := &staticSettings{s: service.GenerationSettings{EnableAPIUsageTracking: true, DefaultLegislator: "Dip. Juan Pérez"}}
	f := newFixture(sp)

	text, err := f.pipeline.Generate(context.Background(), "IA y deepfake")
	require.NoError(t, err)

	assert.Equal(t, finalBill, text)
	assert.Equal(t, "LEY PARA LA REGULACIÓN DE DEEPFAKES EN LA CIUDAD DE MÉXICO", entity.DeriveTitle(text))
	assert.Contains(t, text, "EXPOSICIÓN DE MOTIVOS")
	assert.Contains(t, text, "Artículo")
	assert.Regexp(t, `Ciudad de México, a \d{1,2} de [a-z]+ de \d{4}`, text)

	assert.Equal(t, []string{"research", "draft_generation", "refinement"}, f.recorder.requestTypes())
	assert.Equal(t, 1, sp.calls)

	// 每个阶段的输出成为下一阶段的输入
	assert.Contains(t, f.openai.calls["draft"][0].Prompt, "Ley Federal de Protección de Datos")
	assert.Contains(t, f.openai.calls["refine"][0].Prompt, "BORRADOR")
}

func TestGenerateTrackingDisabledRecordsNothing(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(&staticSettings{})
		_, err := f.pipeline.Generate(context.Background(), "IA y deepfake")
		require.NoError(t, err)
		assert.Empty(t, f.recorder.requestTypes())
	})

	t.Run("failure", func(t *testing.T) {
		f := newFixture(&staticSettings{})
		f.openai.err = map[string]error{"refine": errors.New("rate limited")}
		_, err := f.pipeline.Generate(context.Background(), "IA y deepfake")
		require.Error(t, err)
		assert.Empty(t, f.recorder.requestTypes())
	})
}

func TestGenerateResearchFailureStopsPipeline(t *testing.T) {
	f := newFixture(&staticSettings{s: service.GenerationSettings{EnableAPIUsageTracking: true}})
	f.google.err = map[string]error{"research": errors.New("503 service unavailable")}

	text, err := f.pipeline.Generate(context.Background(), "IA y deepfake")
	require.Error(t, err)
	assert.Empty(t, text)

	assert.True(t, strings.HasPrefix(err.Error(), ErrorPrefix))
	var pe *service.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, service.StageResearch, pe.Stage)

	assert.Equal(t, 1, f.google.count("research"))
	assert.Zero(t, f.openai.count("draft"))
	assert.Zero(t, f.openai.count("refine"))
	assert.Empty(t, f.recorder.requestTypes())
}

func TestGenerateEmptyDraftFailsBeforeRefine(t *testing.T) {
	f := newFixture(&staticSettings{s: service.GenerationSettings{EnableAPIUsageTracking: true}})
	f.openai.texts["draft"] = ""

	_, err := f.pipeline.Generate(context.Background(), "IA y deepfake")
	require.ErrorIs(t, err, service.ErrEmptyResponse)
	assert.Zero(t, f.openai.count("refine"))
	assert.Equal(t, []string{"research"}, f.recorder.requestTypes())
}

func TestGenerateMissingCredentials(t *testing.T) {
	f := newFixture(&staticSettings{s: service.GenerationSettings{EnableAPIUsageTracking: true}})
	f.factory.noCreds = true

	_, err := f.pipeline.Generate(context.Background(), "IA y deepfake")
	require.Error(t, err)

	assert.True(t, service.IsConfigError(err))
	assert.False(t, service.IsProviderError(err))
	assert.Zero(t, f.google.count("research"))
	assert.Zero(t, f.openai.count("draft"))

	appErr := ToAppError(err)
	assert.Equal(t, apperrors.CodeLLMProviderError, appErr.Code)

	f.factory.noCreds = false
	f.google.err = map[string]error{"research": errors.New("timeout")}
	_, err = f.pipeline.Generate(context.Background(), "IA y deepfake")
	assert.Equal(t, apperrors.CodeLLMCallFailed, ToAppError(err).Code)
}

func TestGenerateSettingsFailureUsesDefaults(t *testing.T) {
	f := newFixture(settings.NewProvider(failingSettingRepo{}, nil))

	text, err := f.pipeline.Generate(context.Background(), "IA y deepfake")
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	// 默认值：不限制 token，不记录用量
	assert.Nil(t, f.google.calls["research"][0].MaxTokens)
	assert.Empty(t, f.recorder.requestTypes())
}

func TestGenerateMaxTokens(t *testing.T) {
	t.Run("unset sends no cap", func(t *testing.T) {
		f := newFixture(&staticSettings{})
		_, err := f.pipeline.Generate(context.Background(), "IA y deepfake")
		require.NoError(t, err)
		assert.Nil(t, f.google.calls["research"][0].MaxTokens)
		assert.Nil(t, f.openai.calls["draft"][0].MaxTokens)
		assert.Nil(t, f.openai.calls["refine"][0].MaxTokens)
	})

	t.Run("set is passed to every stage", func(t *testing.T) {
		limit := 4000
		f := newFixture(&staticSettings{s: service.GenerationSettings{MaxTokensPerRequest: &limit}})
		_, err := f.pipeline.Generate(context.Background(), "IA y deepfake")
		require.NoError(t, err)
		for _, req := range []service.GenerateRequest{
			f.google.calls["research"][0],
			f.openai.calls["draft"][0],
			f.openai.calls["refine"][0],
		} {
			require.NotNil(t, req.MaxTokens)
			assert.Equal(t, 4000, *req.MaxTokens)
		}
	})
}

func TestGenerateEmptyTopicRejected(t *testing.T) {
	for _, topic := range []string{"", "   \n\t"} {
		sp := &staticSettings{s: service.GenerationSettings{EnableAPIUsageTracking: true}}
		f := newFixture(sp)

		_, err := f.pipeline.Generate(context.Background(), topic)
		require.ErrorIs(t, err, ErrEmptyTopic)
		assert.Equal(t, apperrors.CodeInvalidParam, ToAppError(err).Code)
		assert.Zero(t, sp.calls)
		assert.Zero(t, f.google.count("research"))
		assert.Empty(t, f.recorder.requestTypes())
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	f := newFixture(&staticSettings{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.pipeline.Generate(ctx, "IA y deepfake")
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.google.count("research"))
}
