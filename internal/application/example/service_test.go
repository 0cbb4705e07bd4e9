package example

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
)

type memRepo struct {
	rows      []*entity.Example
	listCalls int
	err       error
}

func (m *memRepo) Create(_ context.Context, e *entity.Example) error {
	if m.err != nil {
		return m.err
	}
	e.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, e)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*entity.Example, error) {
	for _, e := range m.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, m.err
}

func (m *memRepo) List(_ context.Context, f repository.ExampleFilter, p repository.Pagination) (*repository.PagedResult[*entity.Example], error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	var items []*entity.Example
	for _, e := range m.rows {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.ActiveOnly && !e.IsActive {
			continue
		}
		items = append(items, e)
	}
	return repository.NewPagedResult(items, int64(len(items)), p), nil
}

func (m *memRepo) Count(context.Context) (int64, error) { return int64(len(m.rows)), nil }

// mapCache 进程内的 Cache 实现
type mapCache struct {
	data        map[string][]byte
	invalidated []string
	err         error
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) GetOrLoadSafe(_ context.Context, key string, _ time.Duration, loader func() (interface{}, error)) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	v, err := loader()
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	c.data[key] = b
	return b, nil
}

func (c *mapCache) InvalidatePattern(_ context.Context, pattern string) error {
	c.invalidated = append(c.invalidated, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func seeded() *memRepo {
	return &memRepo{rows: []*entity.Example{
		{ID: 1, Title: "Ley de Protección de Datos", Content: "…", Category: "privacidad", IsActive: true},
		{ID: 2, Title: "Ley de Movilidad", Content: "…", Category: "transporte", IsActive: true},
		{ID: 3, Title: "Ley retirada", Content: "…", Category: "privacidad", IsActive: false},
	}}
}

func TestListFiltersAndCaches(t *testing.T) {
	ctx := context.Background()
	repo, cache := seeded(), newMapCache()
	svc := NewService(repo, cache, time.Minute)

	filter := repository.ExampleFilter{Category: " privacidad ", ActiveOnly: true}
	res, err := svc.List(ctx, filter, repository.Pagination{Page: 1})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Ley de Protección de Datos", res.Items[0].Title)
	assert.Equal(t, defaultPerPage, res.PageSize)

	_, err = svc.List(ctx, filter, repository.Pagination{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	all, err := svc.List(ctx, repository.ExampleFilter{Category: "privacidad"}, repository.NewPagination(1, 10))
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestCreateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo, cache := seeded(), newMapCache()
	svc := NewService(repo, cache, 0)

	_, err := svc.List(ctx, repository.ExampleFilter{ActiveOnly: true}, repository.NewPagination(1, 10))
	require.NoError(t, err)

	ex, err := svc.Create(ctx, Input{Title: "Ley de Ciberseguridad", Content: "Artículo 1.", Category: "tecnologia"})
	require.NoError(t, err)
	assert.True(t, ex.IsActive)
	assert.Equal(t, []string{"examples:*"}, cache.invalidated)

	res, err := svc.List(ctx, repository.ExampleFilter{ActiveOnly: true}, repository.NewPagination(1, 10))
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
	assert.Equal(t, 2, repo.listCalls)
}

func TestListFallsBackWhenCacheFails(t *testing.T) {
	repo, cache := seeded(), newMapCache()
	cache.err = errors.New("dial tcp: connection refused")
	svc := NewService(repo, cache, time.Minute)

	res, err := svc.List(context.Background(), repository.ExampleFilter{}, repository.NewPagination(1, 10))
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
}

func TestGetAndCreateErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewService(seeded(), nil, 0)

	_, err := svc.Get(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrExampleNotFound)

	got, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "transporte", got.Category)

	_, err = svc.Create(ctx, Input{Title: " "})
	assert.ErrorIs(t, err, apperrors.ErrInvalidParam)

	dup := NewService(&memRepo{err: fmt.Errorf("example %q: %w", "Ley de Movilidad", repository.ErrDuplicate)}, nil, 0)
	_, err = dup.Create(ctx, Input{Title: "Ley de Movilidad", Content: "texto"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	failing := NewService(&memRepo{err: errors.New("boom")}, nil, 0)
	_, err = failing.List(ctx, repository.ExampleFilter{}, repository.NewPagination(1, 10))
	assert.ErrorIs(t, err, apperrors.New(apperrors.CodeDatabaseError, ""))
}
