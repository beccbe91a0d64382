package dto

import "github.com/fekuna/omnipos-catalog-service/internal/model"

type CreateCategoryRequest struct {
	Name               string                   `json:"name" validate:"required"`
	PriceConfiguration model.PriceConfiguration `json:"priceConfiguration" validate:"required,dive"`
	Attributes         []model.Attribute        `json:"attributes" validate:"required,dive"`
}

func (r *CreateCategoryRequest) ToInput() *CreateCategoryInput {
	return &CreateCategoryInput{
		Name:               r.Name,
		PriceConfiguration: r.PriceConfiguration,
		Attributes:         r.Attributes,
	}
}

type UpdateCategoryRequest struct {
	Name               *string                  `json:"name" validate:"omitnil,min=1"`
	PriceConfiguration model.PriceConfiguration `json:"priceConfiguration" validate:"omitempty,dive"`
	Attributes         []model.Attribute        `json:"attributes" validate:"omitempty,dive"`
}

func (r *UpdateCategoryRequest) ToInput(id string) *UpdateCategoryInput {
	return &UpdateCategoryInput{
		ID:                 id,
		Name:               r.Name,
		PriceConfiguration: r.PriceConfiguration,
		Attributes:         r.Attributes,
	}
}

type IDResponse struct {
	ID string `json:"id"`
}
