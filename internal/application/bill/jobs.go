package bill

import (
	"context"
	"strings"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
)

const jobInterruptedMessage = "job interrupted before its result was recorded"

// JobPublisher 投递异步生成任务
type JobPublisher interface {
	PublishBillGeneration(ctx context.Context, job *entity.GenerationJob) error
}

// JobService 异步生成任务
type JobService struct {
	jobs      repository.JobRepository
	publisher JobPublisher
	generator *GenerationService
}

// NewJobService publisher 为 nil 时 Enqueue 返回 ErrServiceUnavailable
func NewJobService(jobs repository.JobRepository, publisher JobPublisher, generator *GenerationService) *JobService {
	return &JobService{jobs: jobs, publisher: publisher, generator: generator}
}

// Enqueue 创建任务并投递到队列
func (s *JobService) Enqueue(ctx context.Context, topic string, saveDraft bool) (*entity.GenerationJob, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if s.publisher == nil {
		return nil, apperrors.ErrServiceUnavailable.WithDetail("async generation is not available")
	}

	job := entity.NewGenerationJob(topic, saveDraft)
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create job")
	}

	if err := s.publisher.PublishBillGeneration(ctx, job); err != nil {
		job.Fail("failed to enqueue job")
		if uErr := s.jobs.Update(ctx, job); uErr != nil {
			logger.Error(ctx, "failed to mark job as failed", uErr, "job_id", job.ID)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeServiceUnavailable, "failed to enqueue job")
	}

	logger.Info(ctx, "generation job enqueued", "job_id", job.ID)
	return job, nil
}

// Get 获取任务
func (s *JobService) Get(ctx context.Context, id string) (*entity.GenerationJob, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get job")
	}
	if job == nil {
		return nil, apperrors.ErrJobNotFound
	}
	return job, nil
}

// Process 执行一个任务。生成失败只记录到任务上，不返回错误；
// 只有任务状态无法写回时才返回错误。重新投递时已开始的任务标记为中断，不再生成。
func (s *JobService) Process(ctx context.Context, jobID string) error {
	ctx = logger.WithContext(ctx, logger.JobIDKey, jobID)

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job == nil {
		logger.Warn(ctx, "job not found, skipping")
		return nil
	}
	if job.Status.Terminal() {
		logger.Info(ctx, "job already finished, skipping", "status", job.Status)
		return nil
	}

	if job.Status == entity.JobStatusRunning && job.StartedAt != nil {
		// 上次执行已开始但结果未写回：生成不重试，直接标记为中断
		logger.Warn(ctx, "job was interrupted, marking as failed", "started_at", job.StartedAt)
		job.Fail(jobInterruptedMessage)
		return s.jobs.Update(ctx, job)
	}

	job.Start()
	if err := s.jobs.Update(ctx, job); err != nil {
		return err
	}

	out, genErr := s.generator.Generate(ctx, job.Topic, job.SaveDraft)
	switch {
	case genErr != nil && out == nil:
		job.Fail(ToAppError(genErr).Message)
		logger.Error(ctx, "generation job failed", genErr)
	case genErr != nil:
		// 生成成功但草稿保存失败，结果仍然保留在任务上
		job.Complete(out.Content, nil)
		logger.Error(ctx, "generation job completed without draft", genErr)
	default:
		job.Complete(out.Content, out.DraftID)
		logger.Info(ctx, "generation job completed", "duration_ms", job.DurationMs)
	}

	return s.jobs.Update(ctx, job)
}
