package dto

import (
	"time"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// JobResponse 任务响应
type JobResponse struct {
	ID          string     `json:"id"`
	JobType     string     `json:"job_type"`
	Status      string     `json:"status"`
	Topic       string     `json:"topic"`
	SaveDraft   bool       `json:"save_draft"`
	DraftID     *int64     `json:"draft_id,omitempty"`
	Result      string     `json:"result,omitempty"`
	ErrorMsg    string     `json:"error_msg,omitempty"`
	DurationMs  int        `json:"duration_ms,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EnqueueJobResponse 异步生成受理响应
type EnqueueJobResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// ToJobResponse 将领域实体转换为响应 DTO
func ToJobResponse(j *entity.GenerationJob) *JobResponse {
	if j == nil {
		return nil
	}
	return &JobResponse{
		ID:          j.ID,
		JobType:     string(j.JobType),
		Status:      string(j.Status),
		Topic:       j.Topic,
		SaveDraft:   j.SaveDraft,
		DraftID:     j.DraftID,
		Result:      j.Result,
		ErrorMsg:    j.ErrorMessage,
		DurationMs:  j.DurationMs,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}
