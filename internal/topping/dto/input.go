package dto

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps Offset within int64.
	MaxPage      = math.MaxInt64 / MaxLimit
)

type CreateToppingInput struct {
	Name      string
	Price     float64
	Image     string
	TenantID  string
	IsPublish bool
}

// UpdateToppingInput sets only the non-nil fields.
type UpdateToppingInput struct {
	ID        string
	Name      *string
	Price     *float64
	Image     *string
	TenantID  *string
	IsPublish *bool
}

// IsEmpty reports whether the update would change nothing.
func (in *UpdateToppingInput) IsEmpty() bool {
	return in.Name == nil && in.Price == nil && in.Image == nil && in.TenantID == nil && in.IsPublish == nil
}

type ToppingFilters struct {
	TenantID string `json:"tenantId"`
	Page     int64  `json:"page"`
	Limit    int64  `json:"limit"`
	Query    string `json:"q,omitempty"`
}

// Normalize applies the default page and limit and caps both.
func (f *ToppingFilters) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

func (f *ToppingFilters) Offset() int64 {
	return (f.Page - 1) * f.Limit
}
