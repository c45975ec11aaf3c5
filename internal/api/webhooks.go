package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/log"
)

// Webhook receives the events the agent reports for a sub wallet.
// The caller is authenticated with the agent admin key and must name an existing wallet.
func (s *Server) Webhook(ctx context.Context, request WebhookRequestObject) (WebhookResponseObject, error) {
	apiKey := deref(request.Params.XAPIKEY)
	if apiKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.cfg.Agent.AdminAPIKey)) != 1 {
		log.Warn(ctx, "webhook with a wrong api key")
		return webhookError(http.StatusUnauthorized, "invalid api key"), nil
	}
	walletID := deref(request.Params.XWALLETID)
	if _, ok := s.wallets.Wallet(ctx, walletID); !ok {
		log.Warn(ctx, "webhook for an unknown wallet", "wallet_id", walletID)
		return webhookError(http.StatusNotFound, "wallet not found"), nil
	}

	payload := map[string]any{}
	if request.Body != nil && *request.Body != nil {
		payload = *request.Body
	}

	if err := s.webhooks.Handle(ctx, walletID, request.Topic, payload); err != nil {
		if errors.Is(err, domain.ErrInvalidTopic) {
			return webhookError(http.StatusBadRequest, err.Error()), nil
		}
		log.Error(ctx, "handling webhook", "err", err)
	}
	return Webhook200JSONResponse{}, nil
}

func webhookError(status int, message string) WebhookdefaultJSONResponse {
	return WebhookdefaultJSONResponse{Body: GenericErrorMessage{Message: message}, StatusCode: status}
}
