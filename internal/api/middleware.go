package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/log"
)

type (
	sessionKey   struct{}
	sessionIDKey struct{}
)

// operations reachable without a session
var publicOperations = map[string]bool{
	"Health":    true,
	"DevSignIn": true,
	"SignOut":   true,
	"Webhook":   true,
}

// latency label of the observed operations
var endpointLabels = map[string]string{
	"Webhook":                    "webhook",
	"GetCredentials":             "credentials",
	"AcceptOffer":                "accept_offer",
	"RespondPresentationRequest": "respond_presentation",
	"GetNotifications":           "notifications",
	"Scan":                       "scanner",
}

// LogMiddleware returns a middleware that adds general log configuration to each context request
func LogMiddleware(ctx context.Context) StrictMiddlewareFunc {
	return func(f StrictHandlerFunc, operationID string) StrictHandlerFunc {
		return func(ctxReq context.Context, w http.ResponseWriter, r *http.Request, args interface{}) (interface{}, error) {
			return f(log.With(log.CopyFromContext(ctx, ctxReq), "req-id", middleware.GetReqID(ctxReq)), w, r, args)
		}
	}
}

// SessionMiddleware rejects the requests to private operations without a live session cookie.
// The session is available to the handlers through sessionFrom.
func (s *Server) SessionMiddleware() StrictMiddlewareFunc {
	return func(f StrictHandlerFunc, operationID string) StrictHandlerFunc {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request, args interface{}) (interface{}, error) {
			cookie, err := r.Cookie(s.cfg.Session.CookieName)
			if publicOperations[operationID] {
				if err == nil {
					ctx = context.WithValue(ctx, sessionIDKey{}, cookie.Value)
				}
				return f(ctx, w, r, args)
			}
			if err != nil {
				return nil, AuthError{err: err}
			}
			session, err := s.sessions.Get(ctx, cookie.Value)
			if err != nil {
				log.Debug(ctx, "rejecting session", "err", err)
				return nil, AuthError{err: err}
			}
			ctx = log.With(ctx, "wallet_id", session.WalletID)
			return f(context.WithValue(ctx, sessionKey{}, session), w, r, args)
		}
	}
}

// LatencyMiddleware records how long the observed operations take
func (s *Server) LatencyMiddleware() StrictMiddlewareFunc {
	return func(f StrictHandlerFunc, operationID string) StrictHandlerFunc {
		endpoint, observed := endpointLabels[operationID]
		if !observed {
			return f
		}
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request, args interface{}) (interface{}, error) {
			defer s.metrics.ObserveEndpoint(endpoint, time.Now())
			return f(ctx, w, r, args)
		}
	}
}

func sessionFrom(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionKey{}).(*domain.Session)
	return session
}

// sessionID is the cookie value a public operation was called with
func sessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok
}

func walletFrom(ctx context.Context) string {
	if session := sessionFrom(ctx); session != nil {
		return session.WalletID
	}
	return ""
}
