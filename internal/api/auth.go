package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/log"
)

// DevSignIn provisions the wallet of the client named in the query and opens a session for it.
// It only exists in development, production sessions come from the credential authentication flow.
func (s *Server) DevSignIn(ctx context.Context, request DevSignInRequestObject) (DevSignInResponseObject, error) {
	if !s.cfg.Development() {
		return DevSignIndefaultJSONResponse{Body: GenericErrorMessage{Message: "not found"}, StatusCode: http.StatusNotFound}, nil
	}
	clientID := deref(request.Params.ClientId)
	if clientID == "" {
		return DevSignIndefaultJSONResponse{Body: GenericErrorMessage{Message: "client_id is required"}, StatusCode: http.StatusBadRequest}, nil
	}

	profile, err := s.wallets.Provision(ctx, clientID, deref(request.Params.Username))
	if err != nil {
		status, body := serviceError(ctx, err)
		return DevSignIndefaultJSONResponse{Body: body, StatusCode: status}, nil
	}
	session := domain.Session{
		ID:       uuid.NewString(),
		ClientID: profile.ClientID,
		WalletID: profile.WalletID,
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		log.Error(ctx, "storing session", "err", err)
		return DevSignIndefaultJSONResponse{Body: GenericErrorMessage{Message: "cannot open session"}, StatusCode: http.StatusInternalServerError}, nil
	}
	cookie := &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(s.cfg.Session.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	log.Info(ctx, "development session opened", "client_id", clientID, "wallet_id", profile.WalletID)
	return DevSignIn200JSONResponse{
		Body:    *profile,
		Headers: DevSignIn200ResponseHeaders{SetCookie: cookie.String()},
	}, nil
}

// SignOut ends the session of the caller, if any
func (s *Server) SignOut(ctx context.Context, _ SignOutRequestObject) (SignOutResponseObject, error) {
	if id, ok := sessionID(ctx); ok {
		if err := s.sessions.Delete(ctx, id); err != nil {
			log.Warn(ctx, "deleting session", "err", err)
		}
	}
	cookie := &http.Cookie{
		Name:     s.cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
	return SignOut200JSONResponse{
		Body:    Empty{},
		Headers: SignOut200ResponseHeaders{SetCookie: cookie.String()},
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
