package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Legacy identity headers, honoured only when header identity is enabled.
const (
	HeaderRequesterRole = "X-Requester-Role"
	HeaderRequesterID   = "X-Requester-Id"
)

type requesterKey struct{}

func WithRequester(ctx context.Context, r user.Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, r)
}

func RequesterFromContext(ctx context.Context) (user.Requester, bool) {
	r, ok := ctx.Value(requesterKey{}).(user.Requester)
	return r, ok
}

// ResolveRequester attaches the requester identity to the request context.
// A bearer token verified by jwtauth.Verifier wins; without one, the legacy
// headers are read when allowHeaders is set. Requests with neither are rejected.
func ResolveRequester(allowHeaders bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester, err := requesterFromToken(r)
			if errors.Is(err, jwtauth.ErrNoTokenFound) && allowHeaders {
				requester, err = requesterFromHeaders(r)
			}
			if err != nil {
				if errors.Is(err, jwtauth.ErrNoTokenFound) {
					err = user.ErrRequesterMissing
				}
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRequester(r.Context(), requester)))
		})
	}
}

func requesterFromToken(r *http.Request) (user.Requester, error) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if errors.Is(err, jwtauth.ErrNoTokenFound) || (err == nil && token == nil) {
		return user.Requester{}, jwtauth.ErrNoTokenFound
	}
	if err != nil {
		return user.Requester{}, user.ErrRequesterMissing
	}

	if tokenType, _ := claims[jwt.ClaimType].(string); tokenType != jwt.TokenTypeAccess {
		return user.Requester{}, user.ErrRequesterMissing
	}
	roleStr, _ := claims[jwt.ClaimRole].(string)
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return user.Requester{}, user.ErrInvalidRole
	}
	employeeID, _ := claims[jwt.ClaimEmployeeID].(string)

	return user.Requester{EmployeeID: employeeID, Role: role}, nil
}

func requesterFromHeaders(r *http.Request) (user.Requester, error) {
	roleStr := strings.TrimSpace(r.Header.Get(HeaderRequesterRole))
	if roleStr == "" {
		return user.Requester{}, user.ErrRequesterMissing
	}
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return user.Requester{}, user.ErrInvalidRole
	}
	return user.Requester{
		EmployeeID: strings.TrimSpace(r.Header.Get(HeaderRequesterID)),
		Role:       role,
	}, nil
}
