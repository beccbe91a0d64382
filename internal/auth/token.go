package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/golang-jwt/jwt/v5"
)

const accessTokenCookie = "accessToken"

var ErrMissingToken = errors.New("missing access token")

type Claims struct {
	Role   string `json:"role"`
	Tenant string `json:"tenant,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 access tokens signed with a shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(raw string) (UserContext, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return UserContext{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.Role == "" {
		return UserContext{}, errors.New("token has no role")
	}
	return UserContext{UserID: claims.Subject, Role: claims.Role, TenantID: claims.Tenant}, nil
}

// Sign issues a token for u; used by tooling and tests.
func (v *Verifier) Sign(u UserContext, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:   u.Role,
		Tenant: u.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func tokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && token != "" {
			return token, nil
		}
	}
	if c, err := r.Cookie(accessTokenCookie); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", ErrMissingToken
}

// Authenticate verifies the bearer token and attaches the caller to the context.
func Authenticate(v *Verifier, onError func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := tokenFromRequest(r)
			if err != nil {
				onError(w, r, apperror.Unauthorized(err))
				return
			}
			user, err := v.Verify(raw)
			if err != nil {
				onError(w, r, apperror.Unauthorized(err))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
