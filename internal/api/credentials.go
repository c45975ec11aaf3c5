package api

import (
	"context"

	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/services"
)

// GetCredentials returns the held credentials. Query parameters are tag filters.
func (s *Server) GetCredentials(ctx context.Context, request GetCredentialsRequestObject) (GetCredentialsResponseObject, error) {
	return GetCredentials200JSONResponse(s.credentials.List(ctx, walletFrom(ctx), credentialFilter(request.Params))), nil
}

func credentialFilter(params GetCredentialsParams) domain.Tags {
	var filter domain.Tags
	for tag, value := range map[string]*string{
		services.TagSchemaID:       params.SchemaId,
		services.TagSchemaName:     params.SchemaName,
		services.TagSchemaVersion:  params.SchemaVersion,
		services.TagCredDefID:      params.CredDefId,
		services.TagCredDefTag:     params.CredDefTag,
		services.TagIssuerID:       params.IssuerId,
		services.TagIssuerName:     params.IssuerName,
		services.TagCredentialName: params.CredentialName,
		services.TagCredExID:       params.CredExId,
		services.TagReceivedAt:     params.ReceivedAt,
	} {
		if value == nil {
			continue
		}
		if filter == nil {
			filter = domain.Tags{}
		}
		filter[tag] = *value
	}
	return filter
}

// DeleteCredential removes a held credential
func (s *Server) DeleteCredential(ctx context.Context, request DeleteCredentialRequestObject) (DeleteCredentialResponseObject, error) {
	if err := s.credentials.Delete(ctx, walletFrom(ctx), request.Id); err != nil {
		status, body := serviceError(ctx, err)
		return DeleteCredentialdefaultJSONResponse{Body: body, StatusCode: status}, nil
	}
	return DeleteCredential200JSONResponse{}, nil
}

// GetConnections returns the connections of the wallet
func (s *Server) GetConnections(ctx context.Context, _ GetConnectionsRequestObject) (GetConnectionsResponseObject, error) {
	return GetConnections200JSONResponse(s.credentials.Connections(ctx, walletFrom(ctx))), nil
}

// GetOffers returns the pending credential offers
func (s *Server) GetOffers(ctx context.Context, _ GetOffersRequestObject) (GetOffersResponseObject, error) {
	return GetOffers200JSONResponse(s.credentials.Offers(ctx, walletFrom(ctx))), nil
}

// GetOffer returns an offer ready to be shown to the user
func (s *Server) GetOffer(ctx context.Context, request GetOfferRequestObject) (GetOfferResponseObject, error) {
	view, err := s.credentials.ViewOffer(ctx, walletFrom(ctx), request.Id)
	if err != nil {
		status, body := serviceError(ctx, err)
		return GetOfferdefaultJSONResponse{Body: body, StatusCode: status}, nil
	}
	return GetOffer200JSONResponse(*view), nil
}

// AcceptOffer requests the offered credential
func (s *Server) AcceptOffer(ctx context.Context, request AcceptOfferRequestObject) (AcceptOfferResponseObject, error) {
	if err := s.credentials.AcceptOffer(ctx, walletFrom(ctx), request.Id); err != nil {
		status, body := serviceError(ctx, err)
		return AcceptOfferdefaultJSONResponse{Body: body, StatusCode: status}, nil
	}
	return AcceptOffer200JSONResponse{}, nil
}

// DeclineOffer refuses the offered credential
func (s *Server) DeclineOffer(ctx context.Context, request DeclineOfferRequestObject) (DeclineOfferResponseObject, error) {
	if err := s.credentials.DeclineOffer(ctx, walletFrom(ctx), request.Id); err != nil {
		status, body := serviceError(ctx, err)
		return DeclineOfferdefaultJSONResponse{Body: body, StatusCode: status}, nil
	}
	return DeclineOffer200JSONResponse{}, nil
}

// GetPresentationRequest returns a proof request with the held credentials able to answer it
func (s *Server) GetPresentationRequest(ctx context.Context, request GetPresentationRequestRequestObject) (GetPresentationRequestResponseObject, error) {
	view, err := s.credentials.ViewPresentationRequest(ctx, walletFrom(ctx), request.Id)
	if err != nil {
		status, body := serviceError(ctx, err)
		return GetPresentationRequestdefaultJSONResponse{Body: body, StatusCode: status}, nil
	}
	return GetPresentationRequest200JSONResponse(*view), nil
}

// RespondPresentationRequest sends the presentation answering a proof request
func (s *Server) RespondPresentationRequest(ctx context.Context, request RespondPresentationRequestRequestObject) (RespondPresentationRequestResponseObject, error) {
	if err := s.credentials.RespondPresentationRequest(ctx, walletFrom(ctx), request.Id); err != nil {
		status, body := serviceError(ctx, err)
		return RespondPresentationRequestdefaultJSONResponse{Body: body, StatusCode: status}, nil
	}
	return RespondPresentationRequest200JSONResponse{}, nil
}

// DeclinePresentationRequest refuses a proof request
func (s *Server) DeclinePresentationRequest(ctx context.Context, request DeclinePresentationRequestRequestObject) (DeclinePresentationRequestResponseObject, error) {
	if err := s.credentials.DeclinePresentationRequest(ctx, walletFrom(ctx), request.Id); err != nil {
		status, body := serviceError(ctx, err)
		return DeclinePresentationRequestdefaultJSONResponse{Body: body, StatusCode: status}, nil
	}
	return DeclinePresentationRequest200JSONResponse{}, nil
}
