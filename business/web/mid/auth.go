package mid

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/cadocurrency/ledger/business/web/errs"
	"github.com/cadocurrency/ledger/foundation/web"
)

// ErrUnauthorized is returned when a request doesn't carry the node's token.
var ErrUnauthorized = errors.New("Unauthorized")

// Authorize checks the request carries the configured API token as a bearer
// token. An empty token disables the check.
func Authorize(token string) web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if token == "" {
				return handler(ctx, w, r)
			}

			// Expecting: bearer <token>
			parts := strings.Split(r.Header.Get("Authorization"), " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return errs.NewTrusted(ErrUnauthorized, http.StatusUnauthorized)
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				return errs.NewTrusted(ErrUnauthorized, http.StatusUnauthorized)
			}

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
