package dto

import "github.com/fekuna/omnipos-catalog-service/internal/model"

type CreateCategoryInput struct {
	Name               string
	PriceConfiguration model.PriceConfiguration
	Attributes         []model.Attribute
}

// UpdateCategoryInput carries only the fields present in the request.
// A nil field means "leave unchanged".
type UpdateCategoryInput struct {
	ID                 string
	Name               *string
	PriceConfiguration model.PriceConfiguration
	Attributes         []model.Attribute
}
