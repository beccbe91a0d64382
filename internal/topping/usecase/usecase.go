package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/topping"
	"github.com/fekuna/omnipos-catalog-service/internal/topping/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/broker"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/search"
	"github.com/fekuna/omnipos-catalog-service/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type Config struct {
	CacheTTL    time.Duration
	SearchIndex string
}

type toppingUseCase struct {
	repo      topping.Repository
	cache     cache.Cache
	publisher broker.Publisher
	es        search.Engine
	cfg       Config
	logger    logger.ZapLogger
}

// NewToppingUseCase wires the store with its side effects. A nil cache or
// publisher disables that side effect; a nil es disables search entirely.
func NewToppingUseCase(repo topping.Repository, c cache.Cache, pub broker.Publisher, es search.Engine, cfg Config, log logger.ZapLogger) topping.UseCase {
	if c == nil {
		c = cache.Nop{}
	}
	if pub == nil {
		pub = broker.Nop{}
	}
	return &toppingUseCase{
		repo:      repo,
		cache:     c,
		publisher: pub,
		es:        es,
		cfg:       cfg,
		logger:    log,
	}
}

func (uc *toppingUseCase) CreateTopping(ctx context.Context, input *dto.CreateToppingInput) (*model.Topping, error) {
	ctx, span := tracing.Start(ctx, "topping.Create", attribute.String("tenant.id", input.TenantID))
	defer span.End()

	t := &model.Topping{
		Name:      input.Name,
		Price:     input.Price,
		Image:     input.Image,
		TenantID:  input.TenantID,
		IsPublish: input.IsPublish,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, tracing.Fail(span, err)
	}

	uc.invalidateListCache(ctx, t.TenantID)
	uc.publish(ctx, topping.EventCreate, t)
	uc.syncToElastic(ctx, t)

	uc.logger.Info("New topping created", zap.String("id", t.ID), zap.String("tenant_id", t.TenantID))
	return t, nil
}

func (uc *toppingUseCase) GetTopping(ctx context.Context, id string) (*model.Topping, error) {
	ctx, span := tracing.Start(ctx, "topping.Get", attribute.String("topping.id", id))
	defer span.End()

	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, tracing.Fail(span, err)
	}
	if t == nil {
		return nil, topping.ErrNotFound
	}
	return t, nil
}

func (uc *toppingUseCase) ListToppings(ctx context.Context, filters *dto.ToppingFilters) (*model.ToppingPage, error) {
	ctx, span := tracing.Start(ctx, "topping.List", attribute.String("tenant.id", filters.TenantID))
	defer span.End()

	filters.Normalize()

	cacheKey, err := generateCacheKey(filters)
	if err == nil {
		var cached model.ToppingPage
		hit, err := uc.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("topping cache read failed", zap.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	var page *model.ToppingPage
	if filters.Query != "" && uc.es != nil {
		page, err = uc.searchToppings(ctx, filters)
		if err != nil {
			uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
			page = nil
		}
	}

	if page == nil {
		toppings, total, err := uc.repo.FindAll(ctx, filters)
		if err != nil {
			return nil, tracing.Fail(span, err)
		}
		page = model.NewToppingPage(toppings, total, filters.Page, filters.Limit)
	}

	if cacheKey != "" {
		if err := uc.cache.Set(ctx, cacheKey, page, uc.cfg.CacheTTL); err != nil {
			uc.logger.Warn("topping cache write failed", zap.Error(err))
		}
	}
	return page, nil
}

func (uc *toppingUseCase) searchToppings(ctx context.Context, filters *dto.ToppingFilters) (*model.ToppingPage, error) {
	q := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": []map[string]any{
					{
						"query_string": map[string]any{
							"query":  fmt.Sprintf("*%s*", filters.Query),
							"fields": []string{"name"},
						},
					},
				},
				"filter": []map[string]any{
					{"term": map[string]any{"tenantId": filters.TenantID}},
				},
			},
		},
		"from": filters.Offset(),
		"size": filters.Limit,
	}

	res, err := uc.es.Search(ctx, uc.cfg.SearchIndex, q)
	if err != nil {
		return nil, err
	}
	toppings := make([]model.Topping, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var t model.Topping
		if err := json.Unmarshal(hit.Source, &t); err != nil {
			return nil, fmt.Errorf("decode topping hit %s: %w", hit.ID, err)
		}
		if t.TenantID != filters.TenantID {
			continue
		}
		toppings = append(toppings, t)
	}
	return model.NewToppingPage(toppings, int64(res.Hits.Total.Value), filters.Page, filters.Limit), nil
}

// UpdateTopping sets the supplied fields. An empty update is a read.
func (uc *toppingUseCase) UpdateTopping(ctx context.Context, input *dto.UpdateToppingInput) (*model.Topping, error) {
	ctx, span := tracing.Start(ctx, "topping.Update", attribute.String("topping.id", input.ID))
	defer span.End()

	existing, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, tracing.Fail(span, err)
	}
	if existing == nil {
		return nil, topping.ErrNotFound
	}
	if input.IsEmpty() {
		return existing, nil
	}

	t, err := uc.repo.Update(ctx, input)
	if err != nil {
		return nil, tracing.Fail(span, err)
	}
	if t == nil {
		return nil, topping.ErrNotFound
	}

	uc.invalidateListCache(ctx, existing.TenantID)
	if t.TenantID != existing.TenantID {
		uc.invalidateListCache(ctx, t.TenantID)
	}
	uc.publish(ctx, topping.EventUpdate, t)
	uc.syncToElastic(ctx, t)

	uc.logger.Info("Updated topping", zap.String("id", t.ID))
	return t, nil
}

func (uc *toppingUseCase) DeleteTopping(ctx context.Context, id string) error {
	ctx, span := tracing.Start(ctx, "topping.Delete", attribute.String("topping.id", id))
	defer span.End()

	t, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return tracing.Fail(span, err)
	}
	if t == nil {
		return nil
	}

	uc.invalidateListCache(ctx, t.TenantID)
	uc.publish(ctx, topping.EventDelete, t)
	if uc.es != nil {
		if err := uc.es.Delete(ctx, uc.cfg.SearchIndex, t.ID); err != nil {
			uc.logger.Error("failed to delete topping from ES", zap.Error(err), zap.String("id", t.ID))
		}
	}

	uc.logger.Info("Topping deleted successfully", zap.String("id", id))
	return nil
}

func (uc *toppingUseCase) publish(ctx context.Context, eventType string, t *model.Topping) {
	event := topping.Event{
		EventType: eventType,
		Data: topping.EventData{
			ID:       t.ID,
			Price:    t.Price,
			TenantID: t.TenantID,
		},
	}
	if err := uc.publisher.Publish(ctx, t.ID, event); err != nil {
		uc.logger.Error("failed to publish topping event",
			zap.Error(err),
			zap.String("event_type", eventType),
			zap.String("id", t.ID),
		)
	}
}

func (uc *toppingUseCase) syncToElastic(ctx context.Context, t *model.Topping) {
	if uc.es == nil {
		return
	}
	if err := uc.es.Index(ctx, uc.cfg.SearchIndex, t.ID, t); err != nil {
		uc.logger.Error("failed to index topping", zap.Error(err), zap.String("id", t.ID))
	}
}

func generateCacheKey(filters *dto.ToppingFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", listKeyPrefix(filters.TenantID), md5.Sum(data)), nil
}

// listKeyPrefix hashes the tenant id so it carries no glob metacharacters
// into the invalidation pattern.
func listKeyPrefix(tenantID string) string {
	return fmt.Sprintf("toppings:list:%x:", md5.Sum([]byte(tenantID)))
}

func (uc *toppingUseCase) invalidateListCache(ctx context.Context, tenantID string) {
	pattern := listKeyPrefix(tenantID) + "*"
	if err := uc.cache.DeletePattern(ctx, pattern); err != nil {
		uc.logger.Warn("topping cache invalidation failed", zap.Error(err), zap.String("tenant_id", tenantID))
	}
}
