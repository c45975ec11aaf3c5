package api

import (
	"context"
	"net/http"
	"strings"
)

// Scan processes the payload read by the wallet camera. It accepts a form or a json body with a payload field.
func (s *Server) Scan(ctx context.Context, request ScanRequestObject) (ScanResponseObject, error) {
	payload := scannedPayload(request)
	if strings.TrimSpace(payload) == "" {
		return ScandefaultJSONResponse{
			Body:       ScanResponse{Status: ScanResponseStatusError, Message: "payload is required"},
			StatusCode: http.StatusBadRequest,
		}, nil
	}

	result, err := s.scanner.Scan(ctx, walletFrom(ctx), payload)
	if err != nil {
		status, body := serviceError(ctx, err)
		return ScandefaultJSONResponse{
			Body:       ScanResponse{Status: ScanResponseStatusError, Message: body.Message},
			StatusCode: status,
		}, nil
	}
	return Scan200JSONResponse{
		Status:  ScanResponseStatusSuccess,
		Message: "payload processed",
		Result:  result,
	}, nil
}

func scannedPayload(request ScanRequestObject) string {
	switch {
	case request.JSONBody != nil:
		return deref(request.JSONBody.Payload)
	case request.FormdataBody != nil:
		return deref(request.FormdataBody.Payload)
	default:
		return ""
	}
}
