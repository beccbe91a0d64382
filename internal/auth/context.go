package auth

import "context"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)

type UserContext struct {
	UserID   string
	Role     string
	TenantID string
}

type ctxKey struct{}

func WithUser(ctx context.Context, u UserContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the caller attached by Authenticate.
func UserFromContext(ctx context.Context) (UserContext, bool) {
	u, ok := ctx.Value(ctxKey{}).(UserContext)
	return u, ok
}

// CanManageTenant reports whether the caller may write data owned by tenantID.
// Admins manage every tenant; managers only their own.
func CanManageTenant(u UserContext, tenantID string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.Role == RoleManager && u.TenantID != "" && u.TenantID == tenantID
}
