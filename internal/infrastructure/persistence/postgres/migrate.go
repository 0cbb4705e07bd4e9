package postgres

import (
	"context"
	"fmt"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
)

// Models 需要迁移的全部实体，顺序保证外键依赖先建
func Models() []any {
	return []any{
		&entity.Bill{},
		&entity.Draft{},
		&entity.Example{},
		&entity.Setting{},
		&entity.APIUsage{},
		&entity.GenerationJob{},
	}
}

// Migrate 自动迁移表结构
func (c *Client) Migrate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.Migrate")
	defer span.End()

	if err := c.db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
