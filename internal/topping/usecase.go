package topping

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/topping/dto"
)

var ErrNotFound = errors.New("topping not found")

type UseCase interface {
	CreateTopping(ctx context.Context, input *dto.CreateToppingInput) (*model.Topping, error)
	GetTopping(ctx context.Context, id string) (*model.Topping, error)
	ListToppings(ctx context.Context, filters *dto.ToppingFilters) (*model.ToppingPage, error)
	UpdateTopping(ctx context.Context, input *dto.UpdateToppingInput) (*model.Topping, error)
	// DeleteTopping succeeds whether or not the topping exists.
	DeleteTopping(ctx context.Context, id string) error
}
