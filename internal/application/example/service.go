// Package example 管理示例法案，列表结果可选地经由缓存读取
package example

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DanieelRC/LegislaBot/internal/domain/entity"
	"github.com/DanieelRC/LegislaBot/internal/domain/repository"
	apperrors "github.com/DanieelRC/LegislaBot/pkg/errors"
	"github.com/DanieelRC/LegislaBot/pkg/logger"
	"github.com/DanieelRC/LegislaBot/pkg/metrics"
)

const (
	cacheName      = "examples"
	keyPrefix      = "examples:"
	DefaultTTL     = 10 * time.Minute
	defaultPerPage = 10
)

// Cache 读穿缓存，并发未命中时只加载一次
type Cache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func() (interface{}, error)) ([]byte, error)
	InvalidatePattern(ctx context.Context, pattern string) error
}

// Input 创建示例的输入
type Input struct {
	Title       string
	Description string
	Content     string
	Category    string
	// Inactive 为 true 时创建为停用状态
	Inactive bool
}

// Service 示例法案服务
type Service struct {
	repo  repository.ExampleRepository
	cache Cache
	ttl   time.Duration
}

// NewService cache 为 nil 时直接读库
func NewService(repo repository.ExampleRepository, cache Cache, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{repo: repo, cache: cache, ttl: ttl}
}

// List 按分类过滤，activeOnly 默认应为 true
func (s *Service) List(ctx context.Context, filter repository.ExampleFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Example], error) {
	filter.Category = strings.TrimSpace(filter.Category)
	if pagination.PageSize < 1 {
		pagination = repository.NewPagination(pagination.Page, defaultPerPage)
	}

	if s.cache == nil {
		return s.listFromDB(ctx, filter, pagination)
	}

	key := listKey(filter, pagination)
	raw, err := s.cache.GetOrLoadSafe(ctx, key, s.ttl, func() (interface{}, error) {
		return s.repo.List(ctx, filter, pagination)
	})
	if err != nil {
		// 缓存不可用时退回数据库
		metrics.CacheRequests.WithLabelValues(cacheName, "error").Inc()
		logger.Warn(ctx, "examples cache unavailable", "error", err.Error())
		return s.listFromDB(ctx, filter, pagination)
	}

	var res repository.PagedResult[*entity.Example]
	if err := json.Unmarshal(raw, &res); err != nil {
		metrics.CacheRequests.WithLabelValues(cacheName, "error").Inc()
		logger.Warn(ctx, "examples cache entry corrupted", "key", key, "error", err.Error())
		return s.listFromDB(ctx, filter, pagination)
	}
	metrics.CacheRequests.WithLabelValues(cacheName, "ok").Inc()
	return &res, nil
}

func (s *Service) listFromDB(ctx context.Context, filter repository.ExampleFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Example], error) {
	res, err := s.repo.List(ctx, filter, pagination)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list examples")
	}
	return res, nil
}

// Get 获取示例
func (s *Service) Get(ctx context.Context, id int64) (*entity.Example, error) {
	ex, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to get example")
	}
	if ex == nil {
		return nil, apperrors.ErrExampleNotFound
	}
	return ex, nil
}

// Create 创建示例并清空列表缓存
func (s *Service) Create(ctx context.Context, in Input) (*entity.Example, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, apperrors.ErrInvalidParam.WithDetail("title and content are required")
	}
	ex := &entity.Example{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Content:     in.Content,
		Category:    strings.TrimSpace(in.Category),
		IsActive:    !in.Inactive,
	}
	if err := s.repo.Create(ctx, ex); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrConflict.WithDetail("an example with this title already exists")
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to create example")
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePattern(ctx, keyPrefix+"*"); err != nil {
			logger.Warn(ctx, "failed to invalidate examples cache", "error", err.Error())
		}
	}
	return ex, nil
}

func listKey(f repository.ExampleFilter, p repository.Pagination) string {
	return fmt.Sprintf("%slist:%s:%t:%d:%d", keyPrefix, f.Category, f.ActiveOnly, p.Page, p.PageSize)
}
