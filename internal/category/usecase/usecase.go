package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const listCacheKey = "categories:all"

type categoryUseCase struct {
	repo     category.Repository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, c cache.Cache, cacheTTL time.Duration, log logger.ZapLogger) category.UseCase {
	if c == nil {
		c = cache.Nop{}
	}
	return &categoryUseCase{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	ctx, span := tracing.Start(ctx, "category.Create")
	defer span.End()

	cat := &model.Category{
		Name:               input.Name,
		PriceConfiguration: input.PriceConfiguration,
		Attributes:         input.Attributes,
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, tracing.Fail(span, err)
	}
	uc.invalidateListCache(ctx)

	uc.logger.Info("New category created", zap.String("id", cat.ID))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	ctx, span := tracing.Start(ctx, "category.Get", attribute.String("category.id", id))
	defer span.End()

	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, tracing.Fail(span, err)
	}
	if cat == nil {
		return nil, category.ErrNotFound
	}

	uc.logger.Info("Getting category", zap.String("id", id))
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	ctx, span := tracing.Start(ctx, "category.List")
	defer span.End()

	var cached []model.Category
	hit, err := uc.cache.Get(ctx, listCacheKey, &cached)
	if err != nil {
		uc.logger.Warn("category cache read failed", zap.Error(err))
	}
	if hit {
		uc.logger.Info("All Categories list fetched", zap.Int("count", len(cached)), zap.Bool("cached", true))
		return cached, nil
	}

	categories, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, tracing.Fail(span, err)
	}
	if err := uc.cache.Set(ctx, listCacheKey, categories, uc.cacheTTL); err != nil {
		uc.logger.Warn("category cache write failed", zap.Error(err))
	}

	uc.logger.Info("All Categories list fetched", zap.Int("count", len(categories)))
	return categories, nil
}

// UpdateCategory overlays the supplied fields on the stored category.
// priceConfiguration keys missing from the input keep their stored value.
func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	ctx, span := tracing.Start(ctx, "category.Update", attribute.String("category.id", input.ID))
	defer span.End()

	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, tracing.Fail(span, err)
	}
	if cat == nil {
		return nil, category.ErrNotFound
	}

	if input.Name != nil {
		cat.Name = *input.Name
	}
	if input.PriceConfiguration != nil {
		cat.PriceConfiguration = cat.PriceConfiguration.Merge(input.PriceConfiguration)
	}
	if input.Attributes != nil {
		cat.Attributes = input.Attributes
	}

	updated, err := uc.repo.Update(ctx, cat)
	if err != nil {
		return nil, tracing.Fail(span, err)
	}
	if updated == nil {
		// removed between read and write
		return nil, category.ErrNotFound
	}
	uc.invalidateListCache(ctx)

	uc.logger.Info("Updated category", zap.String("id", updated.ID))
	return updated, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	ctx, span := tracing.Start(ctx, "category.Delete", attribute.String("category.id", id))
	defer span.End()

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return tracing.Fail(span, err)
	}
	if deleted == nil {
		return category.ErrNotFound
	}
	uc.invalidateListCache(ctx)

	uc.logger.Info("Category deleted successfully", zap.String("id", id))
	return nil
}

func (uc *categoryUseCase) invalidateListCache(ctx context.Context) {
	if err := uc.cache.DeletePattern(ctx, listCacheKey); err != nil {
		uc.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}
