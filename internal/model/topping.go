package model

type Topping struct {
	BaseModel
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	Image     string  `db:"image" json:"image"`
	TenantID  string  `db:"tenant_id" json:"tenantId"`
	IsPublish bool    `db:"is_publish" json:"isPublish"`
}

// ToppingPage is one page of a tenant's toppings.
type ToppingPage struct {
	Data        []Topping `json:"data"`
	Total       int64     `json:"total"`
	PerPage     int64     `json:"perPage"`
	CurrentPage int64     `json:"currentPage"`
	TotalPages  int64     `json:"totalPages"`
}

// NewToppingPage fills in totalPages from total and perPage.
func NewToppingPage(data []Topping, total, page, limit int64) *ToppingPage {
	if data == nil {
		data = []Topping{}
	}
	pages := int64(0)
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &ToppingPage{
		Data:        data,
		Total:       total,
		PerPage:     limit,
		CurrentPage: page,
		TotalPages:  pages,
	}
}
