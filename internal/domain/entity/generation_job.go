package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobType 任务类型
type JobType string

const (
	JobTypeBillGeneration JobType = "bill_generation"
)

// JobStatus 任务状态
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Terminal 是否为终态
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

// GenerationJob 异步生成任务
type GenerationJob struct {
	ID           string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	JobType      JobType    `json:"job_type" gorm:"type:varchar(50);not null"`
	Status       JobStatus  `json:"status" gorm:"type:varchar(20);not null;index"`
	Topic        string     `json:"topic" gorm:"type:text;not null"`
	SaveDraft    bool       `json:"save_draft" gorm:"not null;default:false"`
	DraftID      *int64     `json:"draft_id,omitempty"`
	Result       string     `json:"result,omitempty" gorm:"type:text"`
	ErrorMessage string     `json:"error_message,omitempty" gorm:"type:text"`
	DurationMs   int        `json:"duration_ms,omitempty"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// TableName 指定表名
func (GenerationJob) TableName() string {
	return "generation_jobs"
}

// NewGenerationJob 创建新任务
func NewGenerationJob(topic string, saveDraft bool) *GenerationJob {
	return &GenerationJob{
		ID:        uuid.NewString(),
		JobType:   JobTypeBillGeneration,
		Status:    JobStatusPending,
		Topic:     topic,
		SaveDraft: saveDraft,
		CreatedAt: time.Now(),
	}
}

// Start 开始执行任务
func (j *GenerationJob) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
}

// Complete 完成任务
func (j *GenerationJob) Complete(result string, draftID *int64) {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.Result = result
	j.DraftID = draftID
	j.CompletedAt = &now
	if j.StartedAt != nil {
		j.DurationMs = int(now.Sub(*j.StartedAt).Milliseconds())
	}
}

// Fail 任务失败
func (j *GenerationJob) Fail(errMsg string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.ErrorMessage = errMsg
	j.CompletedAt = &now
	if j.StartedAt != nil {
		j.DurationMs = int(now.Sub(*j.StartedAt).Milliseconds())
	}
}
