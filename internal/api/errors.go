package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/services"
	"github.com/polygonid/wallet-mediator/internal/invitation"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/repositories"
)

// AuthError is returned by the session middleware when the caller has no live session
type AuthError struct {
	err error
}

func (e AuthError) Error() string {
	return "unauthorized"
}

func (e AuthError) Unwrap() error {
	return e.err
}

// RequestErrorHandlerFunc answers the bodies the strict handler could not decode
func RequestErrorHandlerFunc(w http.ResponseWriter, r *http.Request, err error) {
	log.Debug(r.Context(), "invalid request body", "err", err, "path", r.URL.Path)
	writeError(w, http.StatusBadRequest, err.Error())
}

// ResponseErrorHandlerFunc answers the errors returned by the handlers and their middlewares
func ResponseErrorHandlerFunc(w http.ResponseWriter, r *http.Request, err error) {
	var authErr AuthError
	if errors.As(err, &authErr) {
		writeError(w, http.StatusUnauthorized, authErr.Error())
		return
	}
	log.Error(r.Context(), "unexpected error", "err", err, "path", r.URL.Path)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// ErrorHandlerFunc answers the requests whose parameters could not be bound
func ErrorHandlerFunc(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(GenericErrorMessage{Message: message})
}

// serviceError maps a service error to the status and message of its answer
func serviceError(ctx context.Context, err error) (int, GenericErrorMessage) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed", "err", err)
	} else {
		log.Debug(ctx, "request rejected", "err", err)
	}
	return status, GenericErrorMessage{Message: err.Error()}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidTopic),
		errors.Is(err, invitation.ErrMalformed),
		errors.Is(err, services.ErrUnsupportedDIDMethod):
		return http.StatusBadRequest
	case errors.Is(err, repositories.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrWalletNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrExchangeNotFound),
		errors.Is(err, services.ErrCredentialNotFound),
		errors.Is(err, repositories.ErrTenantNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrQueryUnsatisfied),
		errors.Is(err, services.ErrNoHolderBinding):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrAgentUnavailable),
		errors.Is(err, services.ErrExchangeFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
