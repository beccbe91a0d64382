package topping

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/topping/dto"
)

// Repository reports absence as a nil topping with a nil error.
type Repository interface {
	Create(ctx context.Context, topping *model.Topping) error
	FindByID(ctx context.Context, id string) (*model.Topping, error)
	FindAll(ctx context.Context, filters *dto.ToppingFilters) ([]model.Topping, int64, error)
	Update(ctx context.Context, input *dto.UpdateToppingInput) (*model.Topping, error)
	Delete(ctx context.Context, id string) (*model.Topping, error)
}
