package messaging

import (
	"context"
	"fmt"
)

// JobProcessor 执行一个已持久化的生成任务
type JobProcessor interface {
	Process(ctx context.Context, jobID string) error
}

// NewBillGenerationHandler 把 bill.generate 消息交给任务处理器
// 返回错误的消息会按退避重试，所以 Process 只在任务状态无法写回时出错。
func NewBillGenerationHandler(p JobProcessor) MessageHandler {
	return func(ctx context.Context, msg *Message) error {
		var payload BillGenerationMessage
		if err := msg.UnmarshalPayload(&payload); err != nil {
			return fmt.Errorf("failed to decode bill generation payload: %w", err)
		}
		jobID := payload.JobID
		if jobID == "" {
			jobID = msg.ID
		}
		return p.Process(ctx, jobID)
	}
}
