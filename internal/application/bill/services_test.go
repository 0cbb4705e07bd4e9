package bill

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
)

func TestGenerationServiceSavesDraft(t *testing.T) {
	drafts := newMemDrafts()
	svc := NewGenerationService(fixedGenerator{text: finalBill}, NewDraftService(drafts, newMemBills(), directTx{}))

	out, err := svc.Generate(context.Background(), "IA y deepfake", true)
	require.NoError(t, err)
	require.NotNil(t, out.DraftID)
	assert.Equal(t, "LEY PARA LA REGULACIÓN DE DEEPFAKES EN LA CIUDAD DE MÉXICO", out.Title)

	saved, err := drafts.GetByID(context.Background(), *out.DraftID)
	require.NoError(t, err)
	assert.Equal(t, finalBill, saved.Content)
	assert.Equal(t, out.Title, saved.Title)
}

func TestGenerationServiceWithoutSave(t *testing.T) {
	drafts := newMemDrafts()
	svc := NewGenerationService(fixedGenerator{text: finalBill}, NewDraftService(drafts, newMemBills(), directTx{}))

	out, err := svc.Generate(context.Background(), "IA", false)
	require.NoError(t, err)
	assert.Nil(t, out.DraftID)
	assert.Empty(t, drafts.rows)
}

func TestGenerationServiceDraftFailureKeepsText(t *testing.T) {
	drafts := newMemDrafts()
	drafts.failAdd = true
	svc := NewGenerationService(fixedGenerator{text: finalBill}, NewDraftService(drafts, newMemBills(), directTx{}))

	out, err := svc.Generate(context.Background(), "IA", true)
	require.Error(t, err)
	require.NotNil(t, out)
	assert.Equal(t, finalBill, out.Content)
	assert.Nil(t, out.DraftID)
}

func TestDraftConvertToBill(t *testing.T) {
	ctx := context.Background()
	drafts, bills := newMemDrafts(), newMemBills()
	svc := NewDraftService(drafts, bills, directTx{})

	d, err := svc.Create(ctx, "", finalBill)
	require.NoError(t, err)

	b, err := svc.ConvertToBill(ctx, d.ID, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConvertedTopic, b.Topic)
	assert.Equal(t, entity.BillStatusDraft, b.Status)
	assert.Equal(t, d.Title, b.Title)

	linked, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.BillID)
	assert.Equal(t, b.ID, *linked.BillID)

	_, err = svc.ConvertToBill(ctx, d.ID, "otro")
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	_, err = svc.ConvertToBill(ctx, 999, "x")
	assert.True(t, errors.Is(err, apperrors.ErrDraftNotFound))
}

func TestDraftServiceErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewDraftService(newMemDrafts(), newMemBills(), directTx{})

	_, err := svc.Create(ctx, "t", "  ")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidParam))

	_, err = svc.Get(ctx, 42)
	assert.True(t, errors.Is(err, apperrors.ErrDraftNotFound))

	assert.True(t, errors.Is(svc.Delete(ctx, 42), apperrors.ErrDraftNotFound))
}

func TestBillServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewBillService(newMemBills())

	b, err := svc.Create(ctx, BillInput{Content: finalBill, Topic: "deepfakes"})
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusDraft, b.Status)

	updated, err := svc.Update(ctx, b.ID, BillInput{Status: entity.BillStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, entity.BillStatusPublished, updated.Status)
	assert.Equal(t, finalBill, updated.Content)

	_, err = svc.Update(ctx, b.ID, BillInput{Status: "pending"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidParam))

	res, err := svc.List(ctx, &repository.BillFilter{Status: entity.BillStatusPublished}, repository.NewPagination(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)

	_, err = svc.List(ctx, &repository.BillFilter{Status: "bogus"}, repository.NewPagination(1, 10))
	assert.True(t, errors.Is(err, apperrors.ErrInvalidParam))

	require.NoError(t, svc.Delete(ctx, b.ID))
	_, err = svc.Get(ctx, b.ID)
	assert.True(t, errors.Is(err, apperrors.ErrBillNotFound))
}

func TestBillServiceCreateValidation(t *testing.T) {
	svc := NewBillService(newMemBills())
	tests := []struct {
		name string
		in   BillInput
	}{
		{"missing content", BillInput{Topic: "x"}},
		{"missing topic", BillInput{Content: "x"}},
		{"bad status", BillInput{Content: "x", Topic: "y", Status: "pending"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidParam))
		})
	}
}

func TestJobServiceEnqueueAndProcess(t *testing.T) {
	ctx := context.Background()
	jobs, drafts := newMemJobs(), newMemDrafts()
	pub := &recordingPublisher{}
	gen := NewGenerationService(fixedGenerator{text: finalBill}, NewDraftService(drafts, newMemBills(), directTx{}))
	svc := NewJobService(jobs, pub, gen)

	job, err := svc.Enqueue(ctx, "  IA y deepfake ", true)
	require.NoError(t, err)
	assert.Equal(t, "IA y deepfake", job.Topic)
	require.Len(t, pub.jobs, 1)

	require.NoError(t, svc.Process(ctx, job.ID))

	got, err := svc.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusCompleted, got.Status)
	assert.Equal(t, finalBill, got.Result)
	require.NotNil(t, got.DraftID)
	assert.NotNil(t, got.StartedAt)
	assert.NotNil(t, got.CompletedAt)

	// 重复投递的消息不会再次执行
	require.NoError(t, svc.Process(ctx, job.ID))
	assert.Len(t, drafts.rows, 1)
}

func TestJobServiceProcessFailure(t *testing.T) {
	ctx := context.Background()
	jobs := newMemJobs()
	gen := NewGenerationService(fixedGenerator{err: &GenerationError{Err: errors.New("boom")}}, nil)
	svc := NewJobService(jobs, &recordingPublisher{}, gen)

	job, err := svc.Enqueue(ctx, "IA", false)
	require.NoError(t, err)
	require.NoError(t, svc.Process(ctx, job.ID))

	got, err := svc.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusFailed, got.Status)
	assert.NotEmpty(t, got.ErrorMessage)
	assert.NotContains(t, got.ErrorMessage, "boom")
}

func TestJobServiceRedeliveryDoesNotRegenerate(t *testing.T) {
	ctx := context.Background()
	jobs := &flakyJobs{memJobs: newMemJobs(), failCompleted: 1}
	drafts := newMemDrafts()
	pipeline := &countingGenerator{text: finalBill}
	gen := NewGenerationService(pipeline, NewDraftService(drafts, newMemBills(), directTx{}))
	svc := NewJobService(jobs, &recordingPublisher{}, gen)

	job, err := svc.Enqueue(ctx, "IA y deepfake", true)
	require.NoError(t, err)

	require.Error(t, svc.Process(ctx, job.ID))
	require.NoError(t, svc.Process(ctx, job.ID))

	assert.Equal(t, 1, pipeline.runs)
	assert.Len(t, drafts.rows, 1)

	got, err := svc.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusFailed, got.Status)
	assert.Equal(t, jobInterruptedMessage, got.ErrorMessage)

	// 已是终态，后续投递直接跳过
	require.NoError(t, svc.Process(ctx, job.ID))
	assert.Equal(t, 1, pipeline.runs)
}

func TestJobServiceEnqueueErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewJobService(newMemJobs(), &recordingPublisher{}, nil).Enqueue(ctx, " ", false)
	assert.ErrorIs(t, err, ErrEmptyTopic)

	_, err = NewJobService(newMemJobs(), nil, nil).Enqueue(ctx, "IA", false)
	assert.True(t, errors.Is(err, apperrors.ErrServiceUnavailable))

	jobs := newMemJobs()
	_, err = NewJobService(jobs, &recordingPublisher{err: errors.New("redis down")}, nil).Enqueue(ctx, "IA", false)
	require.Error(t, err)
	for _, j := range jobs.rows {
		assert.Equal(t, entity.JobStatusFailed, j.Status)
	}

	_, err = NewJobService(newMemJobs(), nil, nil).Get(ctx, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrJobNotFound))

	assert.NoError(t, NewJobService(newMemJobs(), nil, nil).Process(ctx, "missing"))
}
