package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// Repository reports absence as a nil category, never as an error.
type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) (*model.Category, error)
	Delete(ctx context.Context, id string) (*model.Category, error)
}
