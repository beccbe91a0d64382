package dto

type CreateToppingRequest struct {
	Name      string   `json:"name" validate:"required"`
	Price     *float64 `json:"price" validate:"required,gte=0"`
	Image     string   `json:"image" validate:"required"`
	TenantID  string   `json:"tenantId" validate:"required"`
	IsPublish bool     `json:"isPublish"`
}

func (r *CreateToppingRequest) ToInput() *CreateToppingInput {
	return &CreateToppingInput{
		Name:      r.Name,
		Price:     *r.Price,
		Image:     r.Image,
		TenantID:  r.TenantID,
		IsPublish: r.IsPublish,
	}
}

type UpdateToppingRequest struct {
	Name      *string  `json:"name" validate:"omitnil,min=1"`
	Price     *float64 `json:"price" validate:"omitnil,gte=0"`
	Image     *string  `json:"image" validate:"omitnil,min=1"`
	TenantID  *string  `json:"tenantId" validate:"omitnil,min=1"`
	IsPublish *bool    `json:"isPublish"`
}

func (r *UpdateToppingRequest) ToInput(id string) *UpdateToppingInput {
	return &UpdateToppingInput{
		ID:        id,
		Name:      r.Name,
		Price:     r.Price,
		Image:     r.Image,
		TenantID:  r.TenantID,
		IsPublish: r.IsPublish,
	}
}

type IDResponse struct {
	ID string `json:"id"`
}
