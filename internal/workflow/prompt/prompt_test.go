package prompt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateES(t *testing.T) {
	assert.Equal(t, "18 de octubre de 2026", FormatDateES(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1 de enero de 2025", FormatDateES(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRenderResearchHasNoSystem(t *testing.T) {
	r := NewRegistry()
	vars := DateVars(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	vars["topic"] = "IA y deepfake"

	out, err := r.Render(context.Background(), PromptResearchV1, vars)
	require.NoError(t, err)
	assert.Empty(t, out.System)
	assert.Contains(t, out.User, "IA y deepfake")
	assert.Contains(t, out.User, "18 de octubre de 2026")
	assert.Contains(t, out.User, "2026-2031")
	assert.Contains(t, out.User, "Título de la fuente")
}

func TestRenderDraftAndRefine(t *testing.T) {
	r := NewRegistry()
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	vars := DateVars(now)
	vars["topic"] = "deepfakes"
	vars["research"] = "FUENTES"
	vars["legislator_line"] = "Considera que este proyecto podría ser presentado por Dip. Juan Pérez."
	vars["legislator_suffix"] = ", Dip. Juan Pérez"
	draft, err := r.Render(context.Background(), PromptDraftV1, vars)
	require.NoError(t, err)
	assert.Contains(t, draft.System, "EXPOSICIÓN DE MOTIVOS")
	assert.Contains(t, draft.User, "FUENTES")
	assert.Contains(t, draft.User, "Dip. Juan Pérez")

	vars = DateVars(now)
	vars["draft"] = "BORRADOR"
	refine, err := r.Render(context.Background(), PromptRefineV1, vars)
	require.NoError(t, err)
	assert.NotEmpty(t, refine.System)
	assert.Contains(t, refine.User, "BORRADOR")
}

func TestUnknownPrompt(t *testing.T) {
	_, err := NewRegistry().ChatTemplate("nope")
	assert.Error(t, err)
}
