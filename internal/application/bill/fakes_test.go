package bill

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
)

var errDB = errors.New("connection refused")

type memDrafts struct {
	mu      sync.Mutex
	next    int64
	rows    map[int64]*entity.Draft
	failAdd bool
}

func newMemDrafts() *memDrafts { return &memDrafts{rows: map[int64]*entity.Draft{}} }

func (m *memDrafts) Create(_ context.Context, d *entity.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAdd {
		return errDB
	}
	m.next++
	d.ID = m.next
	cp := *d
	m.rows[d.ID] = &cp
	return nil
}

func (m *memDrafts) GetByID(_ context.Context, id int64) (*entity.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m *memDrafts) List(_ context.Context, p repository.Pagination) (*repository.PagedResult[*entity.Draft], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]*entity.Draft, 0, len(m.rows))
	for _, d := range m.rows {
		items = append(items, d)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return repository.NewPagedResult(items, int64(len(items)), p), nil
}

func (m *memDrafts) Update(_ context.Context, d *entity.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.rows[d.ID] = &cp
	return nil
}

func (m *memDrafts) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

type memBills struct {
	mu      sync.Mutex
	next    int64
	rows    map[int64]*entity.Bill
	failAdd bool
}

func newMemBills() *memBills { return &memBills{rows: map[int64]*entity.Bill{}} }

func (m *memBills) Create(_ context.Context, b *entity.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAdd {
		return errDB
	}
	m.next++
	b.ID = m.next
	cp := *b
	m.rows[b.ID] = &cp
	return nil
}

func (m *memBills) GetByID(_ context.Context, id int64) (*entity.Bill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *memBills) Update(_ context.Context, b *entity.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.rows[b.ID] = &cp
	return nil
}

func (m *memBills) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memBills) List(_ context.Context, f *repository.BillFilter, p repository.Pagination) (*repository.PagedResult[*entity.Bill], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*entity.Bill
	for _, b := range m.rows {
		if f != nil && f.Status != "" && b.Status != f.Status {
			continue
		}
		items = append(items, b)
	}
	return repository.NewPagedResult(items, int64(len(items)), p), nil
}

type memJobs struct {
	mu   sync.Mutex
	rows map[string]*entity.GenerationJob
}

func newMemJobs() *memJobs { return &memJobs{rows: map[string]*entity.GenerationJob{}} }

func (m *memJobs) Create(_ context.Context, j *entity.GenerationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *j
	m.rows[j.ID] = &cp
	return nil
}

func (m *memJobs) GetByID(_ context.Context, id string) (*entity.GenerationJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (m *memJobs) Update(_ context.Context, j *entity.GenerationJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *j
	m.rows[j.ID] = &cp
	return nil
}

func (m *memJobs) UpdateStatus(_ context.Context, id string, status entity.JobStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j, ok := m.rows[id]; ok {
		j.Status = status
	}
	return nil
}

func (m *memJobs) List(_ context.Context, status entity.JobStatus, p repository.Pagination) (*repository.PagedResult[*entity.GenerationJob], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*entity.GenerationJob
	for _, j := range m.rows {
		if status == "" || j.Status == status {
			items = append(items, j)
		}
	}
	return repository.NewPagedResult(items, int64(len(items)), p), nil
}

// flakyJobs 前 failCompleted 次写入 completed 状态时失败
type flakyJobs struct {
	*memJobs
	failCompleted int
}

func (f *flakyJobs) Update(ctx context.Context, j *entity.GenerationJob) error {
	if j.Status == entity.JobStatusCompleted && f.failCompleted > 0 {
		f.failCompleted--
		return errors.New("db write timeout")
	}
	return f.memJobs.Update(ctx, j)
}

// countingGenerator 统计流程执行次数
type countingGenerator struct {
	text string
	mu   sync.Mutex
	runs int
}

func (g *countingGenerator) Generate(context.Context, string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.runs++
	return g.text, nil
}

// directTx 直接执行回调，错误时不回滚
type directTx struct{}

func (directTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedGenerator struct {
	text string
	err  error
}

func (g fixedGenerator) Generate(context.Context, string) (string, error) {
	return g.text, g.err
}

type recordingPublisher struct {
	err  error
	jobs []*entity.GenerationJob
}

func (p *recordingPublisher) PublishBillGeneration(_ context.Context, job *entity.GenerationJob) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, job)
	return nil
}
