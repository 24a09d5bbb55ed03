package visitor

import (
	"context"
	"log/slog"
	"net/http"
)

// CookieName is the cookie carrying the signed visitor token.
const CookieName = "visitor"

// contextKey is an unexported type used for context keys in this package.
//
// context.WithValue uses any as the key type. A package-private type means
// only this package can create a key of type contextKey, so nobody else can
// read or shadow the visitor ID by accident.
type contextKey string

const visitorIDKey contextKey = "visitorID"

// Identify is a middleware that makes sure every request has a visitor ID.
//
// It reads the "visitor" cookie and validates it. When the cookie is
// missing, expired, or tampered with, a new ID is minted and a fresh cookie
// is set on the response. Either way the ID is stored in the request
// context; handlers read it with IDFromContext.
//
// Unlike an auth middleware this never rejects a request: an unknown
// visitor is simply a new visitor.
func Identify(tokens *TokenService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := idFromCookie(r, tokens)
			if err != nil {
				id = NewID()
				if err := setCookie(w, tokens, id); err != nil {
					// Still serve the page; the visitor just won't be remembered.
					logger.Error("failed to issue visitor cookie", slog.String("error", err.Error()))
				}
			}

			ctx := WithID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithID returns a copy of ctx carrying visitorID.
func WithID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorIDKey, visitorID)
}

// IDFromContext retrieves the visitor ID from the request context.
// Returns ("", false) when the Identify middleware did not run.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorIDKey).(string)
	return id, ok && id != ""
}

func idFromCookie(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}
	return tokens.Validate(cookie.Value)
}

// setCookie issues the visitor cookie.
//
//   - HttpOnly: page scripts never need the ID
//   - SameSite=Lax: sent on top-level navigations, not on cross-site POSTs,
//     so another site cannot flip a visitor's theme
func setCookie(w http.ResponseWriter, tokens *TokenService, id string) error {
	tokenStr, err := tokens.Generate(id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenStr,
		Path:     "/",
		MaxAge:   int(TokenLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
